package insertsize

import (
	"fmt"
	"strings"
)

// Orientation classifies the relative strands of a read pair, using
// the Picard/HTSJDK FR/RF/TANDEM convention. It doubles as an index
// into the per-orientation histograms in Stats.
type Orientation int

const (
	// FR means the left-end read aligned to the forward strand and
	// the right-end read to the reverse strand. This is the common
	// library layout.
	FR Orientation = iota
	// RF means the left-end read aligned to the reverse strand and
	// the right-end read to the forward strand.
	RF
	// Tandem means both reads aligned to the same strand.
	Tandem

	numOrientations
)

// String returns the Picard-style name of the orientation.
func (o Orientation) String() string {
	switch o {
	case FR:
		return "FR"
	case RF:
		return "RF"
	case Tandem:
		return "TANDEM"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation parses a case-insensitive orientation name, one of
// "fr", "rf", or "tandem".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "fr":
		return FR, nil
	case "rf":
		return RF, nil
	case "tandem":
		return Tandem, nil
	}
	return FR, fmt.Errorf("unknown pair orientation %q, expected fr, rf, or tandem", s)
}

// Orient returns the orientation of a pair given the reverse-strand
// flags of its left-end read and of that read's mate. It is meaningful
// only for the record of a pair with positive template length; callers
// must not invoke it for unpaired or improper records.
func Orient(leftReverse, rightReverse bool) Orientation {
	switch {
	case leftReverse == rightReverse:
		return Tandem
	case !leftReverse:
		return FR
	default:
		return RF
	}
}
