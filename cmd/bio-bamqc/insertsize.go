package main

import (
	"fmt"

	"github.com/grailbio/bamqc/insertsize"
	gbam "github.com/grailbio/bio/encoding/bam"
	"github.com/grailbio/bio/encoding/bamprovider"
)

type insertSizeFlags struct {
	index             *string
	parallelism       *int
	includeDuplicates *bool
	requireProperPair *bool
	minPct            *float64
	orientation       *string
	strategy          *string
}

func runInsertSize(flags insertSizeFlags, path string) error {
	orientation, err := insertsize.ParseOrientation(*flags.orientation)
	if err != nil {
		return err
	}
	strategy, err := insertsize.ParseStrategy(*flags.strategy)
	if err != nil {
		return err
	}
	if *flags.minPct < 0.0 || *flags.minPct > 0.5 {
		return insertsize.ErrInvalidMinPct
	}

	provider := bamprovider.NewProvider(path, bamprovider.ProviderOpts{
		Index: *flags.index,
		DropFields: []gbam.FieldType{
			gbam.FieldMapq,
			gbam.FieldCigar,
			gbam.FieldMatePos,
			gbam.FieldName,
			gbam.FieldSeq,
			gbam.FieldQual,
			gbam.FieldAux,
		}})
	stats, err := insertsize.Scan(provider, insertsize.ScanOpts{
		Opts: insertsize.Opts{
			IncludeDuplicates: *flags.includeDuplicates,
			RequireProperPair: *flags.requireProperPair,
		},
		Parallelism: *flags.parallelism,
	})
	if e := provider.Close(); e != nil && err == nil {
		err = e
	}
	if err != nil {
		return err
	}

	size, err := insertsize.Calculate(stats, *flags.minPct, orientation, strategy)
	if err != nil {
		return err
	}
	fmt.Println(size)
	return nil
}
