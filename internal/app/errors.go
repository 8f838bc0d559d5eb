package service

import "errors"

var (
	// ErrNotStarted is returned when the service is used before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrUnknownSeries is returned for a chart series that does not exist.
	ErrUnknownSeries = errors.New("unknown series")
)
