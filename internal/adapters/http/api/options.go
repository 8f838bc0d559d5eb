package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/okian/sihdash/pkg/logger"
)

type options struct {
	logger   logger.Logger
	validate *validator.Validate
}

// Option configures the API server.
type Option func(*options)

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithValidator shares a validator instance.
func WithValidator(v *validator.Validate) Option {
	return func(o *options) {
		if v != nil {
			o.validate = v
		}
	}
}
