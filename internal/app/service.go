// Package service provides the dashboard service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/sihdash/internal/adapters/dataset"
	"github.com/okian/sihdash/internal/adapters/session"
	"github.com/okian/sihdash/internal/config"
	"github.com/okian/sihdash/internal/domain/filter"
	"github.com/okian/sihdash/internal/domain/model"
	"github.com/okian/sihdash/internal/domain/rollup"
	"github.com/okian/sihdash/internal/domain/types"
	"github.com/okian/sihdash/pkg/logger"
	"github.com/okian/sihdash/pkg/metrics"
)

// Service answers dashboard queries for sessions over the cached dataset.
type Service struct {
	mu sync.RWMutex

	// Core components
	cache    *dataset.Cache
	sessions session.Registry
	engine   *filter.Engine

	// Configuration
	dataPath        string
	sessionCapacity int
	topN            config.TopN
	unawarded       []string
	maxChartBars    int

	started bool
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	def := config.New()
	s := &Service{
		dataPath:        def.DataPath,
		sessionCapacity: def.SessionCapacity,
		topN:            def.TopN,
		unawarded:       def.UnawardedPS,
		maxChartBars:    def.MaxChartBars,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components and warms the dataset cache.
// A dataset that fails to load is reported on each request, not here.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting dashboard service...")

	if s.cache == nil {
		s.cache = dataset.NewCache(dataset.WithLogger(s.logger.Named("dataset")))
	}
	if s.sessions == nil {
		s.sessions = session.NewInMemoryRegistry(
			session.WithCapacity(s.sessionCapacity),
			session.WithLogger(s.logger.Named("session")),
		)
	}
	s.engine = filter.NewEngine(filter.WithLogger(s.logger.Named("filter")))

	if t, err := s.cache.Get(ctx, s.dataPath); err != nil {
		s.logger.Warn(ctx, "dataset not available at startup",
			logger.String("path", s.dataPath),
			logger.Error(err))
	} else {
		s.logger.Info(ctx, "dataset ready", logger.Int("rows", t.Len()))
	}

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.String("dataPath", s.dataPath),
		logger.Int("sessionCapacity", s.sessionCapacity),
	)
	return nil
}

// Stop marks the service stopped. Sessions are kept in memory only and are
// dropped with the process.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// CreateSession starts a session with default filters.
func (s *Service) CreateSession(ctx context.Context) (types.Session, error) {
	if err := s.ready(); err != nil {
		return types.Session{}, err
	}
	return types.Session{ID: s.sessions.Create(ctx)}, nil
}

// Filters evaluates the session's filters and returns selections, option
// domains and the filtered count.
func (s *Service) Filters(ctx context.Context, id string) (types.Filters, error) {
	return s.withFilters(ctx, id, func(*filter.State) error { return nil })
}

// UpdateFilters applies u to the session's filters. Nothing changes when any
// key in u is invalid.
func (s *Service) UpdateFilters(ctx context.Context, id string, u filter.Update) (types.Filters, error) {
	return s.withFilters(ctx, id, func(st *filter.State) error { return st.Apply(u) })
}

// ResetFilters restores every filter of the session to its default.
func (s *Service) ResetFilters(ctx context.Context, id string) (types.Filters, error) {
	out, err := s.withFilters(ctx, id, func(st *filter.State) error {
		st.Reset()
		return nil
	})
	if err == nil {
		s.logger.Info(ctx, "session filters reset", logger.String("session", id))
	}
	return out, err
}

func (s *Service) withFilters(ctx context.Context, id string, change func(*filter.State) error) (types.Filters, error) {
	if err := s.ready(); err != nil {
		return types.Filters{}, err
	}
	t, err := s.cache.Get(ctx, s.dataPath)
	if err != nil {
		return types.Filters{}, err
	}
	var out types.Filters
	err = s.sessions.With(ctx, id, func(st *filter.State) error {
		if err := change(st); err != nil {
			return err
		}
		res := s.engine.Apply(ctx, t, st)
		out = types.Filters{
			Selections: make(map[filter.Key][]string),
			Queries:    make(map[filter.Key]string),
			Domains:    res.Domains,
			Dropped:    res.Dropped,
			Records:    res.Count(),
			Total:      t.Len(),
		}
		for _, k := range filter.Keys() {
			if k.IsQuery() {
				if q := st.Query(k); q != "" {
					out.Queries[k] = q
				}
				continue
			}
			if sel := st.Selection(k); len(sel) > 0 {
				out.Selections[k] = sel
			}
		}
		return nil
	})
	return out, err
}

// view returns the session's filtered view of the current dataset.
func (s *Service) view(ctx context.Context, id string) (model.View, error) {
	if err := s.ready(); err != nil {
		return model.View{}, err
	}
	t, err := s.cache.Get(ctx, s.dataPath)
	if err != nil {
		return model.View{}, err
	}
	var v model.View
	err = s.sessions.With(ctx, id, func(st *filter.State) error {
		v = s.engine.Apply(ctx, t, st).View
		return nil
	})
	return v, err
}

// Overview returns the headline view.
func (s *Service) Overview(ctx context.Context, id string) (types.Overview, error) {
	v, err := s.view(ctx, id)
	if err != nil {
		return types.Overview{}, err
	}
	return types.Overview{
		Records:    v.Len(),
		Summary:    rollup.Summarize(v),
		Years:      rollup.YearCounts(v),
		Categories: rollup.ValueCounts(v, model.ColCategory, 0),
		Themes:     rollup.ValueCounts(v, model.ColTheme, s.topN.Themes),
		States:     rollup.ValueCounts(v, model.ColInstituteState, s.topN.States),
		Unawarded:  append([]string{}, s.unawarded...),
	}, nil
}

// ProblemStatements returns the problem statement view.
func (s *Service) ProblemStatements(ctx context.Context, id, query, sortBy string) (types.ProblemStatements, error) {
	v, err := s.view(ctx, id)
	if err != nil {
		return types.ProblemStatements{}, err
	}
	rows, err := rollup.ProblemStatements(v, query, sortBy)
	if err != nil {
		return types.ProblemStatements{}, err
	}
	if sortBy == "" {
		sortBy = rollup.SortTeams
	}
	return types.ProblemStatements{
		Records:       v.Len(),
		Top:           rollup.TopProblemStatements(v, s.topN.ProblemStatements),
		Organizations: rollup.ValueCounts(v, model.ColOrganization, s.topN.Organizations),
		Departments:   rollup.ValueCounts(v, model.ColDepartment, s.topN.Departments),
		Rows:          rows,
		Sort:          sortBy,
		Sorts:         rollup.ProblemStatementSorts(),
	}, nil
}

// ProblemStatement returns the detail of one problem statement in the view.
func (s *Service) ProblemStatement(ctx context.Context, id, psID string) (rollup.ProblemStatementDetail, error) {
	v, err := s.view(ctx, id)
	if err != nil {
		return rollup.ProblemStatementDetail{}, err
	}
	return rollup.ProblemStatement(v, psID)
}

// Institutes returns the institutes and geography view.
func (s *Service) Institutes(ctx context.Context, id, query, sortBy string) (types.Institutes, error) {
	v, err := s.view(ctx, id)
	if err != nil {
		return types.Institutes{}, err
	}
	rows, err := rollup.Institutes(v, query, sortBy)
	if err != nil {
		return types.Institutes{}, err
	}
	if sortBy == "" {
		sortBy = rollup.SortTeams
	}
	return types.Institutes{
		Records: v.Len(),
		Top:     rollup.ValueCounts(v, model.ColInstituteName, s.topN.Institutes),
		States:  rollup.ValueCounts(v, model.ColInstituteState, s.topN.States),
		Share:   rollup.CategoryShare(v, s.topN.ShareStates),
		Rows:    rows,
		Sort:    sortBy,
		Sorts:   rollup.InstituteSorts(),
	}, nil
}

// Teams returns the teams and outcomes view. query narrows only the listing.
func (s *Service) Teams(ctx context.Context, id, query string) (types.Teams, error) {
	v, err := s.view(ctx, id)
	if err != nil {
		return types.Teams{}, err
	}
	return types.Teams{
		Records:  v.Len(),
		Totals:   rollup.TotalsOf(rollup.Summarize(v)),
		Statuses: rollup.Statuses(v),
		Prizes:   rollup.PrizeDistribution(v),
		Rows:     rollup.Teams(v, query),
	}, nil
}

// Explore returns the data explorer view.
func (s *Service) Explore(ctx context.Context, id string, q rollup.ExplorerQuery) (types.Explorer, error) {
	v, err := s.view(ctx, id)
	if err != nil {
		return types.Explorer{}, err
	}
	res, err := rollup.Explore(v, q)
	if err != nil {
		return types.Explorer{}, err
	}
	return types.Explorer{ExplorerResult: res, Records: res.Rows.Len(), Data: res.Cells()}, nil
}

// Series returns a chartable value-count series, capped at the chart bar limit.
func (s *Service) Series(ctx context.Context, id, name string) (types.Series, error) {
	def, ok := seriesByName[name]
	if !ok {
		return types.Series{}, fmt.Errorf("%w: %q", ErrUnknownSeries, name)
	}
	v, err := s.view(ctx, id)
	if err != nil {
		return types.Series{}, err
	}
	var counts []rollup.Count
	if def.column == model.ColEditionYear {
		counts = rollup.YearCounts(v)
		if len(counts) > s.maxChartBars {
			counts = counts[:s.maxChartBars]
		}
	} else {
		counts = rollup.ValueCounts(v, def.column, s.maxChartBars)
	}
	return types.Series{Name: name, Title: def.title, Counts: counts}, nil
}

// SeriesNames lists the chartable series.
func SeriesNames() []string {
	return append([]string(nil), seriesOrder...)
}

// Reload drops the cached dataset and loads it again.
func (s *Service) Reload(ctx context.Context) (types.Reload, error) {
	if err := s.ready(); err != nil {
		return types.Reload{}, err
	}
	s.cache.Invalidate(ctx, s.dataPath)
	t, err := s.cache.Get(ctx, s.dataPath)
	if err != nil {
		return types.Reload{}, err
	}
	return types.Reload{Path: s.dataPath, Records: t.Len()}, nil
}

// Stats reports lifecycle, session and cache state.
func (s *Service) Stats(_ context.Context) types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := types.Stats{Started: s.started, DataPath: s.dataPath, SessionCapacity: s.sessionCapacity}
	if s.started {
		st.Sessions = s.sessions.Size()
		st.CachedDatasets = s.cache.Len()
		metrics.UpdateSessionsActive(int(st.Sessions))
	}
	return st
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}
