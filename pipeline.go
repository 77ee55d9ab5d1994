package main

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Report is the outcome of one run: the statistics plus telemetry gathered
// while producing them.
type Report struct {
	Stats
	Source  string
	Elapsed time.Duration
	PeakRSS float64
}

// processFile ingests path and aggregates it. Elapsed covers ingestion start
// through aggregation end.
func processFile(path string, log logrus.FieldLogger) (Report, error) {
	start := time.Now()
	numbers, err := readNumbers(path, log)
	if err != nil {
		return Report{}, err
	}
	if len(numbers) == 0 {
		return Report{}, ErrNoValidNumbers
	}
	stats, err := calculateStatistics(numbers)
	if err != nil {
		return Report{}, err
	}
	return Report{Stats: stats, Source: path, Elapsed: time.Since(start)}, nil
}

// processFileMeasured is processFile with peak memory sampling, used when the
// result is persisted.
func processFileMeasured(path string, log logrus.FieldLogger) (Report, error) {
	report, peak, err := measurePeakResidentMemory(func() (Report, error) {
		return processFile(path, log)
	})
	if err != nil {
		return Report{}, err
	}
	report.PeakRSS = peak
	log.WithField("path", path).Debugf("processed in %.6fs peak_memory=%s",
		report.Elapsed.Seconds(), humanize.Bytes(uint64(peak)))
	return report, nil
}
