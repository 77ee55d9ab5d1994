package main

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultRetryDelay = 2 * time.Second

var retryDelay = defaultRetryDelay

// storeFunc persists one report.
type storeFunc func(runID int64, r Report) error

// handleJob decodes one payload, computes its statistics and stores them.
func handleJob(payload string, store storeFunc, log logrus.FieldLogger) error {
	job, err := decodeJob(payload)
	if err != nil {
		return err
	}
	jobLog := log.WithFields(logrus.Fields{"path": job.Path, "run_id": job.RunID})
	report, err := processFileMeasured(job.Path, jobLog)
	if err != nil {
		return err
	}
	if err := store(job.RunID, report); err != nil {
		return err
	}
	jobLog.Infof("processed duration=%.6fs memory_bytes=%.0f", report.Elapsed.Seconds(), report.PeakRSS)
	return nil
}

// runService pops jobs one at a time until ctx is cancelled. Job failures are
// logged and never stop the loop.
func runService(ctx context.Context, queue jobQueue, store storeFunc, log logrus.FieldLogger) {
	log.Info("waiting for jobs")
	for {
		payload, err := queue.Pop(ctx)
		if ctx.Err() != nil {
			log.Info("shutting down")
			return
		}
		if err != nil {
			log.WithError(err).Warnf("queue read failed; retrying in %s", retryDelay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
			continue
		}
		if payload == "" {
			continue // timeout
		}
		if err := handleJob(payload, store, log); err != nil {
			entry := log.WithError(err)
			if errors.Is(err, ErrInvalidJob) {
				entry.Warnf("skipping job: %s", payload)
				continue
			}
			entry.Error("process error")
		}
	}
}
