package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment from .env files for local development.
	_ = godotenv.Load(".env")

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(configFromEnv(), args, stderr)
	if err != nil {
		if errors.Is(err, ErrUsage) {
			io.WriteString(stdout, usageLine+"\n")
		}
		return 1
	}
	log := newLogger(stderr, cfg.LogLevel)

	if cfg.Service {
		return serve(cfg, log)
	}
	return computeFile(cfg, stdout, log)
}

func computeFile(cfg Config, stdout io.Writer, log *logrus.Logger) int {
	path := cfg.Args[0]
	compute := processFile
	if cfg.Store {
		compute = processFileMeasured
	}

	report, err := compute(path, log)
	switch {
	case errors.Is(err, ErrReadInput):
		log.WithError(err).WithField("path", path).Errorf("Error reading file %s", path)
		return 1
	case errors.Is(err, ErrNoValidNumbers):
		log.WithField("path", path).Error("No valid numbers found.")
		return 1
	case err != nil:
		log.WithError(err).Error("statistics failed")
		return 1
	}

	if err := printReport(stdout, report); err != nil {
		log.WithError(err).Error("write console report")
		return 1
	}
	if err := saveResults(cfg.Output, report); err != nil {
		log.WithError(err).Error("save results")
		return 1
	}
	if cfg.JSONOutput != "" {
		if err := saveJSON(cfg.JSONOutput, report); err != nil {
			log.WithError(err).Error("save json results")
			return 1
		}
	}
	if cfg.Store {
		db, err := openStore()
		if err != nil {
			log.WithError(err).Error("results store unavailable")
			return 1
		}
		defer db.Close()
		if err := insertStatisticsResult(db, cfg.RunID, report); err != nil {
			log.WithError(err).Error("store results")
			return 1
		}
	}
	return 0
}

func serve(cfg Config, log *logrus.Logger) int {
	db, err := openStore()
	if err != nil {
		log.WithError(err).Error("results store unavailable")
		return 1
	}
	defer db.Close()

	queue, err := newRedisQueue(cfg.RedisURL, cfg.Queue)
	if err != nil {
		log.WithError(err).Error("queue unavailable")
		return 1
	}
	defer queue.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runService(ctx, queue, func(runID int64, r Report) error {
		return insertStatisticsResult(db, runID, r)
	}, log.WithField("queue", cfg.Queue))
	return 0
}
