package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/lrsim/lr"
	"github.com/inference-sim/lrsim/lr/trace"
	"github.com/inference-sim/lrsim/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Simulate a sweep and print per-series statistics",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadSweep(cmd)
		results, err := lr.RunSweep(cfg)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		var summaries []*trace.SeriesSummary
		for i := range results {
			for _, s := range results[i].All() {
				summaries = append(summaries, trace.Summarize(s))
			}
		}
		if err := report.WriteSummaries(os.Stdout, summaries); err != nil {
			logrus.Fatalf("Writing summary failed: %v", err)
		}
	},
}

func init() {
	addSweepFlags(summaryCmd)
	rootCmd.AddCommand(summaryCmd)
}
