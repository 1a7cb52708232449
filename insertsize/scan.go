package insertsize

import (
	"runtime"

	_ "github.com/grailbio/bamqc/internal/htscompat" // sync.fastrand shim for hts
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	gbam "github.com/grailbio/bio/encoding/bam"
	"github.com/grailbio/bio/encoding/bamprovider"
	"github.com/grailbio/hts/sam"
)

// ScanOpts configures a sharded scan over an alignment file.
type ScanOpts struct {
	Opts

	// Parallelism caps the number of concurrent shard readers.
	// 0 means runtime.NumCPU().
	Parallelism int
}

// Scan reads every record supplied by the provider and accumulates
// the insert-size histograms. Shards are processed concurrently, each
// worker owning an independent Stats, and the per-worker results are
// combined with Merge once all shards are drained. Because admission
// depends only on a record's own fields, the result is identical to a
// single in-order pass.
//
// Callers must not invoke Calculate on the result if Scan returned an
// error: a partially drained stream yields valid but incomplete
// histograms.
func Scan(provider bamprovider.Provider, opts ScanOpts) (*Stats, error) {
	shards, err := provider.GenerateShards(bamprovider.GenerateShardsOpts{
		IncludeUnmapped:     true,
		SplitMappedCoords:   true,
		SplitUnmappedCoords: true,
	})
	if err != nil {
		return nil, err
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	log.Debug.Printf("insertsize: scanning %d shards with parallelism %d", len(shards), parallelism)

	shardCh := gbam.NewShardChannel(shards)
	perWorker := make([]*Stats, parallelism)
	err = traverse.Each(parallelism, func(workerIdx int) error {
		stats := NewStats()
		perWorker[workerIdx] = stats
		for shard := range shardCh {
			iter := provider.NewIterator(shard)
			for iter.Scan() {
				rec := iter.Record()
				stats.Record(rec, opts.Opts)
				sam.PutInFreePool(rec)
			}
			if err := iter.Close(); err != nil {
				return errors.E(err, "insertsize: error reading shard", shard.String())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	merged := NewStats()
	for _, stats := range perWorker {
		if stats != nil {
			merged.Merge(stats)
		}
	}
	return merged, nil
}
