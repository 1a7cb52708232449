package insertsize

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy selects which orientation category supplies the reported
// insert size when more than one survives the minimum-percentage
// filter.
type Strategy int

const (
	// Specific reports the caller's preferred orientation, and fails
	// if that orientation was filtered out, even when others survive.
	Specific Strategy = iota
	// Dominant reports the surviving orientation with the most
	// records. Exact ties are broken deterministically in favor of
	// the lower ordinal: FR before RF before Tandem.
	Dominant
)

// String returns the flag-value spelling of the strategy.
func (s Strategy) String() string {
	switch s {
	case Specific:
		return "specific"
	case Dominant:
		return "dominant"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy parses a case-insensitive strategy name, one of
// "specific" or "dominant".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "specific":
		return Specific, nil
	case "dominant":
		return Dominant, nil
	}
	return Specific, fmt.Errorf("unknown strategy %q, expected specific or dominant", s)
}

var (
	// ErrInvalidMinPct is returned by Calculate when the
	// minimum-percentage threshold lies outside [0, 0.5].
	ErrInvalidMinPct = errors.New("minimum percentage must be in [0, 0.5]")

	// ErrNoValidReads is returned by Calculate when the scan admitted
	// no records at all, i.e. no left-end record with positive
	// template length survived the filter.
	ErrNoValidReads = errors.New("no read pairs usable for insert size estimation (no left-end records with TLEN>0 after filtering)")
)

// AllFilteredError is returned by Calculate when records were counted
// but every orientation's share of them fell below the
// minimum-percentage threshold.
type AllFilteredError struct {
	MinPct float64
}

func (e *AllFilteredError) Error() string {
	return fmt.Sprintf("all pair orientation categories fell below the minimum percentage %.3f", e.MinPct)
}

// OrientationFilteredError is returned by Calculate under the
// Specific strategy when the requested orientation did not survive
// the minimum-percentage filter, regardless of whether other
// orientations did.
type OrientationFilteredError struct {
	Orientation Orientation
	MinPct      float64
}

func (e *OrientationFilteredError) Error() string {
	return fmt.Sprintf("pair orientation %s fell below the minimum percentage %.3f; lower the threshold or use the dominant strategy", e.Orientation, e.MinPct)
}

// Calculate reports a single insert size from the accumulated
// histograms: orientations holding fewer than minPct of the counted
// records are dropped, one of the survivors is selected per the
// strategy, and the median of its histogram is returned. Calculate
// is a pure function of its arguments; it never modifies stats.
func Calculate(stats *Stats, minPct float64, preferred Orientation, strategy Strategy) (int, error) {
	if minPct < 0.0 || minPct > 0.5 {
		return 0, ErrInvalidMinPct
	}
	total := stats.TotalLeftRecords()
	if total == 0 {
		return 0, ErrNoValidReads
	}

	var kept [numOrientations]bool
	var counts [numOrientations]int64
	anyKept := false
	for o := FR; o < numOrientations; o++ {
		count := stats.OrientationCount(o)
		if count == 0 {
			continue
		}
		if float64(count)/float64(total) >= minPct {
			kept[o] = true
			counts[o] = count
			anyKept = true
		}
	}
	if !anyKept {
		return 0, &AllFilteredError{MinPct: minPct}
	}

	switch strategy {
	case Specific:
		if !kept[preferred] {
			return 0, &OrientationFilteredError{Orientation: preferred, MinPct: minPct}
		}
		return Median(stats.Histogram(preferred)), nil
	default: // Dominant
		best := Orientation(-1)
		for o := FR; o < numOrientations; o++ {
			// Strict > keeps the lowest ordinal on ties.
			if kept[o] && (best < 0 || counts[o] > counts[best]) {
				best = o
			}
		}
		return Median(stats.Histogram(best)), nil
	}
}
