// Package flagstat tallies alignment records by their FLAG bits, in
// the manner of "samtools flagstat". Records are counted into two
// mirror tallies, one for QC-passed and one for QC-failed reads.
package flagstat

import (
	"fmt"
	"runtime"

	_ "github.com/grailbio/bamqc/internal/htscompat" // sync.fastrand shim for hts
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/traverse"
	gbam "github.com/grailbio/bio/encoding/bam"
	"github.com/grailbio/bio/encoding/bamprovider"
	"github.com/grailbio/hts/sam"
)

// Stats holds the per-flag-class tallies for one QC class.
type Stats struct {
	Total         int64
	Primary       int64
	Secondary     int64
	Supplementary int64
	Duplicate     int64
	Mapped        int64
	PrimaryMapped int64
	Paired        int64
	Read1         int64
	Read2         int64
	ProperPair    int64
	BothMapped    int64
	Singletons    int64
	DiffChr       int64
	DiffChrHigh   int64
}

// Record counts one alignment record. Pair-related counters follow
// samtools: they only consider primary records flagged as paired.
func (s *Stats) Record(r *sam.Record) {
	s.Total++
	f := r.Flags
	if (f & sam.Unmapped) == 0 {
		s.Mapped++
	}
	if (f & sam.Duplicate) != 0 {
		s.Duplicate++
	}
	if (f&sam.Secondary) == 0 && (f&sam.Supplementary) == 0 {
		s.Primary++
		if (f & sam.Unmapped) == 0 {
			s.PrimaryMapped++
		}
	}
	if (f & sam.Secondary) != 0 {
		s.Secondary++
	} else if (f & sam.Supplementary) != 0 {
		s.Supplementary++
	} else if (f & sam.Paired) != 0 {
		s.Paired++
		if (f&sam.ProperPair) != 0 && (f&sam.Unmapped) == 0 {
			s.ProperPair++
		}
		if (f & sam.Read1) != 0 {
			s.Read1++
		}
		if (f & sam.Read2) != 0 {
			s.Read2++
		}
		if (f&sam.MateUnmapped) != 0 && (f&sam.Unmapped) == 0 {
			s.Singletons++
		}
		if (f&sam.Unmapped) == 0 && (f&sam.MateUnmapped) == 0 {
			s.BothMapped++
			if r.Ref.ID() != r.MateRef.ID() {
				s.DiffChr++
				if r.MapQ >= 5 {
					s.DiffChrHigh++
				}
			}
		}
	}
}

// Merge adds the counters in src to s.
func (s *Stats) Merge(src Stats) {
	s.Total += src.Total
	s.Primary += src.Primary
	s.Secondary += src.Secondary
	s.Supplementary += src.Supplementary
	s.Duplicate += src.Duplicate
	s.Mapped += src.Mapped
	s.PrimaryMapped += src.PrimaryMapped
	s.Paired += src.Paired
	s.Read1 += src.Read1
	s.Read2 += src.Read2
	s.ProperPair += src.ProperPair
	s.BothMapped += src.BothMapped
	s.Singletons += src.Singletons
	s.DiffChr += src.DiffChr
	s.DiffChrHigh += src.DiffChrHigh
}

// PairedStats holds one tally for QC-passed reads and one for
// QC-failed reads.
type PairedStats struct {
	Pass Stats
	Fail Stats
}

// Record routes one record to the QC-passed or QC-failed tally.
func (p *PairedStats) Record(r *sam.Record) {
	if (r.Flags & sam.QCFail) != 0 {
		p.Fail.Record(r)
		return
	}
	p.Pass.Record(r)
}

// Merge adds the counters in src to p.
func (p *PairedStats) Merge(src PairedStats) {
	p.Pass.Merge(src.Pass)
	p.Fail.Merge(src.Fail)
}

func percent(a, b int64) string {
	if b == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", float64(a)*100/float64(b))
}

// String renders the tallies in samtools flagstat format, one
// "QC-passed + QC-failed" line per flag class.
func (p PairedStats) String() string {
	qc, failed := p.Pass, p.Fail
	s := fmt.Sprintf("%d + %d in total (QC-passed reads + QC-failed reads)\n", qc.Total, failed.Total)
	s += fmt.Sprintf("%d + %d primary\n", qc.Primary, failed.Primary)
	s += fmt.Sprintf("%d + %d secondary\n", qc.Secondary, failed.Secondary)
	s += fmt.Sprintf("%d + %d supplementary\n", qc.Supplementary, failed.Supplementary)
	s += fmt.Sprintf("%d + %d duplicates\n", qc.Duplicate, failed.Duplicate)
	s += fmt.Sprintf("%d + %d mapped (%s:%s)\n", qc.Mapped, failed.Mapped,
		percent(qc.Mapped, qc.Total), percent(failed.Mapped, failed.Total))
	s += fmt.Sprintf("%d + %d primary mapped (%s:%s)\n", qc.PrimaryMapped, failed.PrimaryMapped,
		percent(qc.PrimaryMapped, qc.Primary), percent(failed.PrimaryMapped, failed.Primary))
	s += fmt.Sprintf("%d + %d paired in sequencing\n", qc.Paired, failed.Paired)
	s += fmt.Sprintf("%d + %d read1\n", qc.Read1, failed.Read1)
	s += fmt.Sprintf("%d + %d read2\n", qc.Read2, failed.Read2)
	s += fmt.Sprintf("%d + %d properly paired (%s:%s)\n", qc.ProperPair, failed.ProperPair,
		percent(qc.ProperPair, qc.Paired), percent(failed.ProperPair, failed.Paired))
	s += fmt.Sprintf("%d + %d with itself and mate mapped\n", qc.BothMapped, failed.BothMapped)
	s += fmt.Sprintf("%d + %d singletons (%s:%s)\n", qc.Singletons, failed.Singletons,
		percent(qc.Singletons, qc.Total), percent(failed.Singletons, failed.Total))
	s += fmt.Sprintf("%d + %d with mate mapped to a different chr\n", qc.DiffChr, failed.DiffChr)
	s += fmt.Sprintf("%d + %d with mate mapped to a different chr (mapQ>=5)\n", qc.DiffChrHigh, failed.DiffChrHigh)
	return s
}

// Scan reads every record supplied by the provider and tallies it.
// Shards are processed concurrently; each worker owns an independent
// PairedStats and the results are merged once all shards are drained.
func Scan(provider bamprovider.Provider, parallelism int) (PairedStats, error) {
	var merged PairedStats
	shards, err := provider.GenerateShards(bamprovider.GenerateShardsOpts{
		IncludeUnmapped:     true,
		SplitMappedCoords:   true,
		SplitUnmappedCoords: true,
	})
	if err != nil {
		return merged, err
	}
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	shardCh := gbam.NewShardChannel(shards)
	perWorker := make([]PairedStats, parallelism)
	err = traverse.Each(parallelism, func(workerIdx int) error {
		stats := &perWorker[workerIdx]
		for shard := range shardCh {
			iter := provider.NewIterator(shard)
			for iter.Scan() {
				rec := iter.Record()
				stats.Record(rec)
				sam.PutInFreePool(rec)
			}
			if err := iter.Close(); err != nil {
				return errors.E(err, "flagstat: error reading shard", shard.String())
			}
		}
		return nil
	})
	if err != nil {
		return merged, err
	}
	for _, stats := range perWorker {
		merged.Merge(stats)
	}
	return merged, nil
}
