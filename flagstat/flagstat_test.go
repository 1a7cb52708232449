package flagstat

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"
)

var (
	chr1, _   = sam.NewReference("chr1", "", "", 10000, nil, nil)
	chr2, _   = sam.NewReference("chr2", "", "", 20000, nil, nil)
	header, _ = sam.NewHeader(nil, []*sam.Reference{chr1, chr2})
)

func newRecord(ref *sam.Reference, pos int, flags sam.Flags, mateRef *sam.Reference, mapq byte) *sam.Record {
	r := sam.GetFromFreePool()
	r.Ref = ref
	r.Pos = pos
	r.MateRef = mateRef
	r.Flags = flags
	r.MapQ = mapq
	return r
}

func TestRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  *sam.Record
		want Stats
	}{
		{
			name: "mapped-proper-read1",
			rec:  newRecord(chr1, 100, sam.Paired|sam.ProperPair|sam.Read1|sam.MateReverse, chr1, 60),
			want: Stats{Total: 1, Primary: 1, Mapped: 1, PrimaryMapped: 1, Paired: 1,
				Read1: 1, ProperPair: 1, BothMapped: 1},
		},
		{
			name: "secondary",
			rec:  newRecord(chr1, 100, sam.Paired|sam.Read1|sam.Secondary, chr1, 60),
			want: Stats{Total: 1, Secondary: 1, Mapped: 1},
		},
		{
			name: "supplementary",
			rec:  newRecord(chr1, 100, sam.Paired|sam.Read2|sam.Supplementary, chr1, 60),
			want: Stats{Total: 1, Supplementary: 1, Mapped: 1},
		},
		{
			name: "duplicate",
			rec:  newRecord(chr1, 100, sam.Paired|sam.Read2|sam.Duplicate|sam.MateUnmapped, chr1, 60),
			want: Stats{Total: 1, Primary: 1, Duplicate: 1, Mapped: 1, PrimaryMapped: 1,
				Paired: 1, Read2: 1, Singletons: 1},
		},
		{
			name: "unmapped",
			rec:  newRecord(chr1, 100, sam.Paired|sam.Read1|sam.Unmapped, chr1, 0),
			want: Stats{Total: 1, Primary: 1, Paired: 1, Read1: 1},
		},
		{
			name: "unpaired-mapped",
			rec:  newRecord(chr1, 100, 0, nil, 60),
			want: Stats{Total: 1, Primary: 1, Mapped: 1, PrimaryMapped: 1},
		},
		{
			name: "mate-on-other-chr-high-mapq",
			rec:  newRecord(chr1, 100, sam.Paired|sam.Read1, chr2, 60),
			want: Stats{Total: 1, Primary: 1, Mapped: 1, PrimaryMapped: 1, Paired: 1,
				Read1: 1, BothMapped: 1, DiffChr: 1, DiffChrHigh: 1},
		},
		{
			name: "mate-on-other-chr-low-mapq",
			rec:  newRecord(chr1, 100, sam.Paired|sam.Read1, chr2, 4),
			want: Stats{Total: 1, Primary: 1, Mapped: 1, PrimaryMapped: 1, Paired: 1,
				Read1: 1, BothMapped: 1, DiffChr: 1},
		},
	}
	for _, test := range tests {
		var s Stats
		s.Record(test.rec)
		assert.Equal(t, test.want, s, "case %s", test.name)
	}
}

func TestPairedStatsQCRouting(t *testing.T) {
	var p PairedStats
	p.Record(newRecord(chr1, 100, sam.Paired|sam.Read1|sam.MateReverse, chr1, 60))
	p.Record(newRecord(chr1, 200, sam.Paired|sam.Read2|sam.Reverse|sam.QCFail, chr1, 60))

	assert.Equal(t, int64(1), p.Pass.Total)
	assert.Equal(t, int64(1), p.Fail.Total)
	assert.Equal(t, int64(1), p.Pass.Read1)
	assert.Equal(t, int64(1), p.Fail.Read2)
}

func TestMerge(t *testing.T) {
	recs := []*sam.Record{
		newRecord(chr1, 100, sam.Paired|sam.ProperPair|sam.Read1, chr1, 60),
		newRecord(chr1, 200, sam.Paired|sam.Read2|sam.Unmapped, chr1, 0),
		newRecord(chr1, 300, sam.Paired|sam.Read1|sam.Secondary, chr1, 60),
		newRecord(chr2, 100, sam.Paired|sam.Read1|sam.QCFail, chr2, 60),
		newRecord(chr2, 200, 0, nil, 60),
	}

	var single PairedStats
	for _, r := range recs {
		single.Record(r)
	}

	var a, b PairedStats
	for i, r := range recs {
		if i%2 == 0 {
			a.Record(r)
		} else {
			b.Record(r)
		}
	}
	a.Merge(b)
	assert.Equal(t, single, a)
}

func TestString(t *testing.T) {
	var p PairedStats
	p.Record(newRecord(chr1, 100, sam.Paired|sam.ProperPair|sam.Read1|sam.MateReverse, chr1, 60))
	p.Record(newRecord(chr1, 349, sam.Paired|sam.ProperPair|sam.Read2|sam.Reverse, chr1, 60))
	p.Record(newRecord(chr1, 500, sam.Paired|sam.Read1|sam.Unmapped|sam.MateUnmapped, chr1, 0))

	expected := `3 + 0 in total (QC-passed reads + QC-failed reads)
3 + 0 primary
0 + 0 secondary
0 + 0 supplementary
0 + 0 duplicates
2 + 0 mapped (66.67%:N/A)
2 + 0 primary mapped (66.67%:N/A)
3 + 0 paired in sequencing
2 + 0 read1
1 + 0 read2
2 + 0 properly paired (66.67%:N/A)
2 + 0 with itself and mate mapped
0 + 0 singletons (0.00%:N/A)
0 + 0 with mate mapped to a different chr
0 + 0 with mate mapped to a different chr (mapQ>=5)
`
	assert.Equal(t, expected, p.String())
}
