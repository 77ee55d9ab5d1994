package main

import (
	"io"
	"os"
	"strconv"

	"github.com/hyp3rd/ewrap"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const usageLine = "Usage: compute_statistics fileWithData.txt"

type Config struct {
	Output     string
	JSONOutput string
	LogLevel   string
	Store      bool
	Service    bool
	RunID      int64
	Queue      string
	RedisURL   string
	Args       []string
}

// configFromEnv returns the defaults, taking overrides from the environment.
func configFromEnv() Config {
	cfg := Config{
		Output:   envOr("STATS_OUTPUT", defaultResultsFile),
		LogLevel: envOr("STATS_LOG_LEVEL", "info"),
		Queue:    envOr("WORKER_QUEUE", "default"),
		RedisURL: envOr("REDIS_URL", "redis://localhost:6379/0"),
	}
	cfg.JSONOutput = os.Getenv("STATS_JSON_OUTPUT")
	if v, err := strconv.ParseBool(os.Getenv("STATS_STORE")); err == nil {
		cfg.Store = v
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseFlags applies command line flags on top of cfg. File mode requires
// exactly one positional argument, service mode none.
func parseFlags(cfg Config, args []string, stderr io.Writer) (Config, error) {
	fs := pflag.NewFlagSet("compute_statistics", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		io.WriteString(stderr, usageLine+"\n")
		io.WriteString(stderr, "Use -- before a path that starts with a dash.\n")
		fs.PrintDefaults()
	}
	fs.StringVarP(&cfg.Output, "output", "o", cfg.Output, "results file path")
	fs.StringVar(&cfg.JSONOutput, "json", cfg.JSONOutput, "also write the results as JSON to this path")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.Store, "store", cfg.Store, "store results in Postgres")
	fs.Int64Var(&cfg.RunID, "run-id", cfg.RunID, "run id attached to stored results")
	fs.BoolVar(&cfg.Service, "service", cfg.Service, "consume file jobs from the Redis queue")
	if err := fs.Parse(args); err != nil {
		return cfg, ewrap.Wrap(ErrUsage, err.Error())
	}
	cfg.Args = fs.Args()

	want := 1
	if cfg.Service {
		want = 0
	}
	if len(cfg.Args) != want {
		return cfg, ErrUsage
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
