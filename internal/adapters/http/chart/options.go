package chart

import "github.com/okian/sihdash/pkg/logger"

// Option configures the chart handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}
