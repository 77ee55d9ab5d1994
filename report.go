package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hyp3rd/ewrap"
)

const defaultResultsFile = "StatisticsResults.txt"

func formatReport(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mean: %s\n", formatFloat(r.Mean))
	fmt.Fprintf(&b, "Median: %s\n", formatFloat(r.Median))
	fmt.Fprintf(&b, "Mode: %s\n", formatFloat(r.Mode))
	fmt.Fprintf(&b, "Variance: %s\n", formatFloat(r.Variance))
	fmt.Fprintf(&b, "Standard Deviation: %s\n", formatFloat(r.StdDev))
	fmt.Fprintf(&b, "Elapsed Time: %.4f seconds\n", r.Elapsed.Seconds())
	return b.String()
}

// formatFloat renders v in its shortest round-trip form, keeping a ".0" on
// integral values and switching to exponent notation outside [1e-4, 1e16).
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func printReport(w io.Writer, r Report) error {
	_, err := io.WriteString(w, formatReport(r))
	return err
}

// saveResults replaces the results file with the rendered report in a single write.
func saveResults(path string, r Report) error {
	if err := os.WriteFile(path, []byte(formatReport(r)), 0o644); err != nil {
		return ewrap.Wrapf(err, "write results %s", path)
	}
	return nil
}

type jsonReport struct {
	Mean           float64 `json:"mean"`
	Median         float64 `json:"median"`
	Mode           float64 `json:"mode"`
	Variance       float64 `json:"variance"`
	StdDev         float64 `json:"standard_deviation"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Source         string  `json:"source"`
}

func saveJSON(path string, r Report) error {
	data, err := json.MarshalIndent(jsonReport{
		Mean:           r.Mean,
		Median:         r.Median,
		Mode:           r.Mode,
		Variance:       r.Variance,
		StdDev:         r.StdDev,
		ElapsedSeconds: r.Elapsed.Seconds(),
		Source:         r.Source,
	}, "", "  ")
	if err != nil {
		return ewrap.Wrap(err, "failed to marshal json")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return ewrap.Wrapf(err, "write json %s", path)
	}
	return nil
}
