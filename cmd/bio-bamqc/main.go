package main

import (
	"fmt"
	"log"

	"github.com/grailbio/base/cmdutil"
	"v.io/x/lib/cmdline"
)

func newCmdFlagstat() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "flagstat",
		Short:    "Show flag stats of a BAM or PAM file. This command is a clone of 'samtools flagstat'.",
		ArgsName: "path",
	}
	flags := flagstatFlags{
		index:       cmd.Flags.String("index", "", "Input BAM index filename. By default set to input bampath + .bai"),
		parallelism: cmd.Flags.Int("parallelism", 0, "Maximum number of concurrent shard readers. 0 means the number of CPUs."),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("flagstat takes one pathname argument, but got %v", argv)
		}
		return runFlagstat(flags, argv[0])
	})
	return cmd
}

func newCmdInsertSize() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "insert-size",
		Short:    "Report the median insert size of a BAM or PAM file, following picard CollectInsertSizeMetrics. Prints a single integer.",
		ArgsName: "path",
	}
	flags := insertSizeFlags{
		index:             cmd.Flags.String("index", "", "Input BAM index filename. By default set to input bampath + .bai"),
		parallelism:       cmd.Flags.Int("parallelism", 0, "Maximum number of concurrent shard readers. 0 means the number of CPUs."),
		includeDuplicates: cmd.Flags.Bool("include-duplicates", false, "Count read pairs flagged as duplicates"),
		requireProperPair: cmd.Flags.Bool("require-proper-pair", false, "Count only read pairs flagged as properly paired"),
		minPct:            cmd.Flags.Float64("min-pct", 0.05, "Discard FR/RF/TANDEM categories holding less than this fraction of the counted pairs. Must be in [0, 0.5]."),
		orientation:       cmd.Flags.String("pair-orientation", "fr", "Pair orientation category to report: fr, rf, or tandem"),
		strategy:          cmd.Flags.String("strategy", "specific", "Category selection strategy: 'specific' reports -pair-orientation, 'dominant' reports the largest surviving category"),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("insert-size takes one pathname argument, but got %v", argv)
		}
		return runInsertSize(flags, argv[0])
	})
	return cmd
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-bamqc",
			Short:    "Quality-control metrics for BAM and PAM files",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdFlagstat(),
				newCmdInsertSize(),
			},
		})
}
