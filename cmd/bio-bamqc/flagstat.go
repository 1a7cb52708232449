package main

import (
	"fmt"

	"github.com/grailbio/bamqc/flagstat"
	gbam "github.com/grailbio/bio/encoding/bam"
	"github.com/grailbio/bio/encoding/bamprovider"
)

type flagstatFlags struct {
	index       *string
	parallelism *int
}

func runFlagstat(flags flagstatFlags, path string) error {
	provider := bamprovider.NewProvider(path, bamprovider.ProviderOpts{
		Index: *flags.index,
		DropFields: []gbam.FieldType{
			gbam.FieldCigar,
			gbam.FieldMatePos,
			gbam.FieldTempLen,
			gbam.FieldName,
			gbam.FieldSeq,
			gbam.FieldQual,
			gbam.FieldAux,
		}})
	stats, err := flagstat.Scan(provider, *flags.parallelism)
	if e := provider.Close(); e != nil && err == nil {
		err = e
	}
	if err != nil {
		return err
	}
	fmt.Print(stats.String())
	return nil
}
