package config

import "errors"

var (
	// ErrInvalidConfig marks a config that failed struct validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks an unreadable config file or undecodable value.
	ErrLoadConfig = errors.New("load config failed")
)
