// Package insertsize estimates the insert size (template length) of a
// paired-end alignment file, replicating the conventions of picard
// CollectInsertSizeMetrics.
//
// A scan over the file admits exactly one record per counted pair,
// the left-end record with positive TLEN, and buckets its absolute
// template length by the pair's FR/RF/TANDEM orientation. Once the
// scan completes, Calculate drops orientation categories holding less
// than a configurable fraction of the counted records, selects one of
// the survivors (either a specific orientation or the dominant one),
// and reports the upper median of its histogram.
package insertsize
