package insertsize

import (
	"github.com/grailbio/hts/sam"
)

// Histogram counts the number of pairs observed at each insert size.
// Only positive sizes are ever inserted.
type Histogram map[int]int64

// Opts controls which records contribute to the insert-size
// histograms.
type Opts struct {
	// IncludeDuplicates counts records carrying the duplicate flag.
	// Off by default, matching picard CollectInsertSizeMetrics.
	IncludeDuplicates bool

	// RequireProperPair counts only records flagged as properly
	// paired by the aligner.
	RequireProperPair bool
}

// Stats accumulates one insert-size histogram per pair orientation.
// Exactly one record per pair contributes, the left-end record with
// positive template length, so the total equals the number of counted
// pairs. Stats is not thread safe; during a sharded scan each worker
// owns its own Stats and the results are combined with Merge.
type Stats struct {
	histograms [numOrientations]Histogram
	total      int64
}

// NewStats returns an empty Stats with all three orientation
// histograms allocated.
func NewStats() *Stats {
	s := &Stats{}
	for i := range s.histograms {
		s.histograms[i] = Histogram{}
	}
	return s
}

func (s *Stats) add(orientation Orientation, size int) {
	s.histograms[orientation][size]++
	s.total++
}

// TotalLeftRecords returns the number of counted left-end records,
// which is also the sum of all histogram cells.
func (s *Stats) TotalLeftRecords() int64 {
	return s.total
}

// Histogram returns the histogram for the given orientation. The
// caller must not modify the result.
func (s *Stats) Histogram(orientation Orientation) Histogram {
	return s.histograms[orientation]
}

// OrientationCount returns the number of counted records with the
// given orientation.
func (s *Stats) OrientationCount(orientation Orientation) int64 {
	var n int64
	for _, count := range s.histograms[orientation] {
		n += count
	}
	return n
}

// Merge adds the counts in other to s, cell by cell. Merging the
// per-shard Stats of a sharded scan, in any order, yields the same
// result as a single scan over the whole file.
func (s *Stats) Merge(other *Stats) {
	for i := range s.histograms {
		for size, count := range other.histograms[i] {
			s.histograms[i][size] += count
		}
	}
	s.total += other.total
}

// Record examines one alignment record and, if it passes the filter
// below, counts its absolute template length under the pair's
// orientation. The filter admits exactly the left-end record of each
// counted pair:
//
//  1. the record must be paired,
//  2. secondary and supplementary alignments are skipped,
//  3. duplicates are skipped unless opts.IncludeDuplicates,
//  4. both the record and its mate must be mapped,
//  5. the mate must be on the same reference,
//  6. with opts.RequireProperPair, the pair must be flagged proper,
//  7. the template length must be positive; the mate of a counted
//     record carries the negated length and is skipped, so no pair is
//     counted twice regardless of record order.
//
// Admission depends only on the record's own flags and fields, never
// on cross-record state.
func (s *Stats) Record(r *sam.Record, opts Opts) {
	f := r.Flags
	if (f & sam.Paired) == 0 {
		return
	}
	if (f&sam.Secondary) != 0 || (f&sam.Supplementary) != 0 {
		return
	}
	if !opts.IncludeDuplicates && (f&sam.Duplicate) != 0 {
		return
	}
	if (f&sam.Unmapped) != 0 || (f&sam.MateUnmapped) != 0 {
		return
	}
	if r.Ref.ID() != r.MateRef.ID() {
		return
	}
	if opts.RequireProperPair && (f&sam.ProperPair) == 0 {
		return
	}
	if r.TempLen <= 0 {
		return
	}
	size := r.TempLen
	if size < 0 {
		size = -size
	}
	if size == 0 {
		// Unreachable after the sign check above.
		return
	}
	s.add(Orient((f&sam.Reverse) != 0, (f&sam.MateReverse) != 0), size)
}
