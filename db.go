package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/hyp3rd/ewrap"
	_ "github.com/lib/pq"
)

func buildDSNFromEnv() (string, error) {
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	user := os.Getenv("POSTGRES_USER")
	pass := os.Getenv("POSTGRES_PASSWORD")
	dbname := os.Getenv("POSTGRES_DB")
	if dbname == "" {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			return url, nil
		}
		return "", errors.New("POSTGRES_DB not set; set env vars or DATABASE_URL")
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, dbname), nil
}

func openStore() (*sql.DB, error) {
	dsn, err := buildDSNFromEnv()
	if err != nil {
		return nil, ewrap.Wrap(err, "database config")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, ewrap.Wrap(err, "connect")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, ewrap.Wrap(err, "database not reachable")
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const createResultsTable = `
CREATE TABLE IF NOT EXISTS statistics_results (
  id BIGSERIAL PRIMARY KEY,
  run_id BIGINT,
  source_path TEXT NOT NULL,
  mean DOUBLE PRECISION NOT NULL,
  median DOUBLE PRECISION NOT NULL,
  mode DOUBLE PRECISION NOT NULL,
  variance DOUBLE PRECISION NOT NULL,
  standard_deviation DOUBLE PRECISION NOT NULL,
  duration DOUBLE PRECISION NOT NULL,
  memory DOUBLE PRECISION NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(createResultsTable); err != nil {
		return ewrap.Wrap(err, "create statistics_results")
	}
	return nil
}

// nullableRunID stores zero as NULL.
func nullableRunID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id > 0}
}

func insertStatisticsResult(db *sql.DB, runID int64, r Report) error {
	const q = `
INSERT INTO statistics_results
  (run_id, source_path, mean, median, mode, variance, standard_deviation, duration, memory, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
`
	_, err := db.Exec(q,
		nullableRunID(runID), r.Source,
		r.Mean, r.Median, r.Mode, r.Variance, r.StdDev,
		r.Elapsed.Seconds(), r.PeakRSS,
	)
	if err != nil {
		return ewrap.Wrap(err, "insert statistics_result failed")
	}
	return nil
}
