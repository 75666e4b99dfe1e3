package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/lrsim/lr"
	"github.com/inference-sim/lrsim/lr/trace"
	"github.com/inference-sim/lrsim/report"
)

var (
	sweepPath    string // Path to sweep YAML; empty uses the built-in presets
	outputFormat string // csv, json or yaml
	outputPath   string // Output file; empty writes to stdout
	stepsFlag    int    // Overrides the sweep's default run length when > 0
	onlyNames    []string
)

// runCmd simulates a sweep and writes every series
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate learning-rate schedules and write the (step, rate) series",
	Run: func(cmd *cobra.Command, args []string) {
		if !report.IsValidFormat(outputFormat) {
			logrus.Fatalf("Unknown output format %q; valid: csv, json, yaml", outputFormat)
		}
		cfg := loadSweep(cmd)
		results, err := lr.RunSweep(cfg)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}

		var series []*trace.Series
		for i := range results {
			series = append(series, results[i].All()...)
		}

		out, closeOut := openOutput(outputPath)
		defer closeOut()
		if err := report.WriteSeries(out, report.Format(outputFormat), series); err != nil {
			logrus.Fatalf("Writing series failed: %v", err)
		}
		logrus.Infof("Wrote %d series from %d schedules", len(series), len(results))
	},
}

// loadSweep reads --config (or the presets), applies --steps and --only, and validates.
func loadSweep(cmd *cobra.Command) *lr.SweepConfig {
	var cfg *lr.SweepConfig
	if sweepPath == "" {
		cfg = lr.DefaultSweep()
		logrus.Infof("No --config given, using %d built-in presets", len(cfg.Schedules))
	} else {
		var err error
		cfg, err = lr.LoadSweep(sweepPath)
		if err != nil {
			logrus.Fatalf("Failed to load sweep %s: %v", sweepPath, err)
		}
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = stepsFlag
		for i := range cfg.Schedules {
			cfg.Schedules[i].Steps = 0
		}
	}
	if len(onlyNames) > 0 {
		cfg.Schedules = filterSchedules(cfg.Schedules, onlyNames)
		if len(cfg.Schedules) == 0 {
			logrus.Fatalf("No schedules match --only %v", onlyNames)
		}
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid sweep: %v", err)
	}
	return cfg
}

// filterSchedules keeps the entries whose name is in names, preserving sweep order.
func filterSchedules(entries []lr.SweepEntry, names []string) []lr.SweepEntry {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	var out []lr.SweepEntry
	for _, e := range entries {
		if keep[e.Name] {
			out = append(out, e)
		}
	}
	return out
}

func openOutput(path string) (io.Writer, func()) {
	if path == "" {
		return os.Stdout, func() {}
	}
	f, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("Failed to create %s: %v", path, err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logrus.Errorf("Closing %s: %v", path, err)
		}
	}
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sweepPath, "config", "", "Path to sweep YAML (default: built-in presets)")
	cmd.Flags().IntVar(&stepsFlag, "steps", 0, "Run length for every schedule, overriding the sweep")
	cmd.Flags().StringSliceVar(&onlyNames, "only", nil, "Comma-separated schedule names to run")
}

func init() {
	addSweepFlags(runCmd)
	runCmd.Flags().StringVar(&outputFormat, "format", "csv", "Output format (csv, json, yaml)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Output file (default: stdout)")

	rootCmd.AddCommand(runCmd)
}
