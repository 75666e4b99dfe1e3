// Package report renders finished schedule runs. It is stateless: every function takes
// the recorded series and writes them out, and nothing here feeds back into scheduling.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/lrsim/lr/trace"
)

// Format selects the series output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// validFormats maps accepted format strings.
var validFormats = map[Format]bool{
	FormatCSV:  true,
	FormatJSON: true,
	FormatYAML: true,
}

// IsValidFormat returns true if the given string is a recognized output format.
func IsValidFormat(format string) bool {
	return validFormats[Format(format)]
}

// WriteSeries writes every point of every series to w in the given format.
// CSV output is long-form: one row per (series, step).
func WriteSeries(w io.Writer, format Format, series []*trace.Series) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, series)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(series)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(series); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q; valid: csv, json, yaml", format)
	}
}

func writeCSV(w io.Writer, series []*trace.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"label", "policy", "step", "rate"}); err != nil {
		return err
	}
	for _, s := range series {
		for _, p := range s.Points {
			row := []string{s.Label, s.Policy, strconv.Itoa(p.Step), strconv.FormatFloat(p.Rate, 'g', -1, 64)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaries prints one aligned row of statistics per series.
func WriteSummaries(w io.Writer, summaries []*trace.SeriesSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tPOLICY\tSTEPS\tINITIAL\tFINAL\tMIN\tMAX\tMEAN\tCHANGES\tINCREASES")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%d\t%d\n",
			s.Label, s.Policy, s.Steps, s.Initial, s.Final, s.Min, s.Max, s.Mean, s.Changes, s.Increases)
	}
	return tw.Flush()
}
