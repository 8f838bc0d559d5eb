package dataset

import (
	"context"

	"github.com/okian/sihdash/internal/domain/model"
	"github.com/okian/sihdash/pkg/logger"
)

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used by the cache.
func WithLogger(l logger.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithValidator replaces the schema check run once per loaded file version.
func WithValidator(fn func(*model.Table) error) Option {
	return func(c *Cache) {
		if fn != nil {
			c.validate = fn
		}
	}
}

// WithLoader replaces the function used to read a file.
func WithLoader(fn func(context.Context, string) (*model.Table, error)) Option {
	return func(c *Cache) {
		if fn != nil {
			c.load = fn
		}
	}
}
