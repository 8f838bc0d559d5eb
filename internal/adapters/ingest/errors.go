package ingest

import "errors"

var (
	// ErrMissingColumns is returned when a scraper output lacks a needed column.
	ErrMissingColumns = errors.New("missing columns")
	// ErrNoInput is returned when a glob matches no shortlisted batch.
	ErrNoInput = errors.New("no input files")
)
