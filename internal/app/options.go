package service

import (
	"github.com/okian/sihdash/internal/adapters/dataset"
	"github.com/okian/sihdash/internal/adapters/session"
	"github.com/okian/sihdash/internal/config"
	"github.com/okian/sihdash/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig copies the dataset, session and view settings from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		WithDataPath(cfg.DataPath)(s)
		WithSessionCapacity(cfg.SessionCapacity)(s)
		WithTopN(cfg.TopN)(s)
		WithUnawarded(cfg.UnawardedPS)(s)
		WithMaxChartBars(cfg.MaxChartBars)(s)
	}
}

// WithDataPath sets the dataset CSV path.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithSessionCapacity bounds the number of live sessions.
func WithSessionCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sessionCapacity = n
		}
	}
}

// WithTopN sets the per-view list limits. Zero fields keep their default.
func WithTopN(t config.TopN) Option {
	return func(s *Service) {
		set := func(dst *int, v int) {
			if v > 0 {
				*dst = v
			}
		}
		set(&s.topN.Themes, t.Themes)
		set(&s.topN.States, t.States)
		set(&s.topN.ShareStates, t.ShareStates)
		set(&s.topN.Institutes, t.Institutes)
		set(&s.topN.ProblemStatements, t.ProblemStatements)
		set(&s.topN.Organizations, t.Organizations)
		set(&s.topN.Departments, t.Departments)
	}
}

// WithUnawarded sets the problem statements listed as having no winners.
func WithUnawarded(ids []string) Option {
	return func(s *Service) {
		s.unawarded = append([]string(nil), ids...)
	}
}

// WithMaxChartBars caps the bars of a chart series.
func WithMaxChartBars(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxChartBars = n
		}
	}
}

// WithCache shares a dataset cache with the service.
func WithCache(c *dataset.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithSessions sets the session registry.
func WithSessions(r session.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.sessions = r
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
