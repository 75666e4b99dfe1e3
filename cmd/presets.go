package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/lrsim/lr"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Print the built-in sweep as YAML",
	Long:  "Print the built-in sweep in the same format accepted by --config, as a starting point for custom sweeps. Output is written to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		writeSweepToStdout(lr.DefaultSweep())
	},
}

func writeSweepToStdout(cfg *lr.SweepConfig) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		logrus.Fatalf("YAML marshal failed: %v", err)
	}
	fmt.Print(string(data))
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
