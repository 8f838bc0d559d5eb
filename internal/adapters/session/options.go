package session

import "github.com/okian/sihdash/pkg/logger"

const defaultCapacity = 10_000

// Option configures the registry.
type Option func(*inMemoryRegistry)

// WithCapacity bounds the number of live sessions. Values below one are ignored.
func WithCapacity(n int) Option {
	return func(r *inMemoryRegistry) {
		if n > 0 {
			r.capacity = n
		}
	}
}

// WithLogger sets the registry logger.
func WithLogger(l logger.Logger) Option {
	return func(r *inMemoryRegistry) {
		if l != nil {
			r.logger = l
		}
	}
}
