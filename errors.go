package main

import "github.com/hyp3rd/ewrap"

var (
	// ErrUsage is returned when the command line has the wrong number of arguments.
	ErrUsage = ewrap.New("usage")

	// ErrReadInput is returned when the input file cannot be opened or read.
	ErrReadInput = ewrap.New("error reading file")

	// ErrNoValidNumbers is returned when ingestion produced an empty dataset.
	ErrNoValidNumbers = ewrap.New("no valid numbers found")

	// ErrInvalidJob is returned when a queued job payload cannot be used.
	ErrInvalidJob = ewrap.New("invalid job")
)
