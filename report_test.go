package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/longbridgeapp/assert"
)

var sampleReport = Report{
	Stats:   Stats{Mean: 5, Median: 4.5, Mode: 4, Variance: 4, StdDev: 2},
	Source:  "data.txt",
	Elapsed: 1500 * time.Millisecond,
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 4, want: "4.0"},
		{in: 2.5, want: "2.5"},
		{in: -3, want: "-3.0"},
		{in: 0, want: "0.0"},
		{in: 0.1 + 0.2, want: "0.30000000000000004"},
		{in: 1.5e-5, want: "1.5e-05"},
		{in: 0.0001, want: "0.0001"},
		{in: 1e16, want: "1e+16"},
		{in: 123456789012345.6, want: "123456789012345.6"},
		{in: math.Inf(1), want: "inf"},
		{in: math.Inf(-1), want: "-inf"},
		{in: math.NaN(), want: "nan"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, formatFloat(test.in))
	}
}

func TestFormatReport(t *testing.T) {
	want := "Mean: 5.0\n" +
		"Median: 4.5\n" +
		"Mode: 4.0\n" +
		"Variance: 4.0\n" +
		"Standard Deviation: 2.0\n" +
		"Elapsed Time: 1.5000 seconds\n"
	assert.Equal(t, want, formatReport(sampleReport))
}

func TestSaveResultsOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), defaultResultsFile)
	if err := os.WriteFile(path, []byte("stale content that is longer than the report itself ..........................................................................\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	assert.Nil(t, saveResults(path, sampleReport))

	got, err := os.ReadFile(path)
	assert.Nil(t, err)
	assert.Equal(t, formatReport(sampleReport), string(got))
}

func TestSaveResultsBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")
	assert.True(t, saveResults(path, sampleReport) != nil)
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	assert.Nil(t, saveJSON(path, sampleReport))

	data, err := os.ReadFile(path)
	assert.Nil(t, err)
	var got jsonReport
	assert.Nil(t, json.Unmarshal(data, &got))
	assert.Equal(t, jsonReport{
		Mean:           5,
		Median:         4.5,
		Mode:           4,
		Variance:       4,
		StdDev:         2,
		ElapsedSeconds: 1.5,
		Source:         "data.txt",
	}, got)
}
