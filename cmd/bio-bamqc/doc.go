/*Command bio-bamqc computes quality-control metrics from BAM or PAM
  files.

  Subcommands:

    flagstat <path>     Tally records by FLAG bits, in samtools
                        flagstat format.

    insert-size <path>  Report the median insert size of the file's
                        read pairs, replicating the conventions of
                        picard CollectInsertSizeMetrics. On success
                        prints a single integer.

  Examples:
    bio-bamqc flagstat foo.bam
    bio-bamqc insert-size -min-pct=0.05 -strategy=dominant foo.bam
*/
package main
