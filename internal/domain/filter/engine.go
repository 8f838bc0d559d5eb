package filter

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/okian/sihdash/internal/domain/model"
	"github.com/okian/sihdash/internal/domain/search"
	"github.com/okian/sihdash/pkg/logger"
	"github.com/okian/sihdash/pkg/metrics"
)

// Domain is the option list of one multi-select key, computed from the view
// left by the earlier stages.
type Domain struct {
	Key      Key      `json:"key"`
	Values   []string `json:"values"`
	Selected []string `json:"selected"`
	// Single marks a domain of at most one value; the key is then unfiltered.
	Single bool `json:"single"`
}

// Result is one evaluation of a State against a table.
type Result struct {
	View    model.View
	Domains []Domain
	Dropped map[Key][]string
}

// Count returns the number of records left.
func (r Result) Count() int { return r.View.Len() }

// Domain returns the option domain for key.
func (r Result) Domain(key Key) (Domain, bool) {
	for _, d := range r.Domains {
		if d.Key == key {
			return d, true
		}
	}
	return Domain{}, false
}

// Engine applies filter states to tables.
type Engine struct {
	logger logger.Logger
}

// NewEngine creates an engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Get()
	}
	return e
}

// Apply narrows t through the pipeline. Stale selections in st are dropped
// before each stage is applied, so st must be owned by the caller. The table
// is only read.
func (e *Engine) Apply(ctx context.Context, t *model.Table, st *State) Result {
	start := time.Now()
	view := t.All()
	res := Result{Domains: make([]Domain, 0, len(stages))}

	for _, sg := range stages {
		values, set := domainOf(view, sg)
		d := Domain{Key: sg.key, Values: values, Single: len(values) <= 1}
		if dropped := st.reconcile(sg.key, set); len(dropped) > 0 {
			if res.Dropped == nil {
				res.Dropped = make(map[Key][]string)
			}
			res.Dropped[sg.key] = dropped
			metrics.RecordReconciledValues(string(sg.key), len(dropped))
			e.logger.Debug(ctx, "dropped stale filter values",
				logger.String("key", string(sg.key)),
				logger.Strings("values", dropped))
		}
		// a single-value domain cannot narrow the view
		if sel := st.selections[sg.key]; !d.Single && len(sel) > 0 {
			view = view.Filter(inSet(sg.value, sel))
		}
		d.Selected = st.Selection(sg.key)
		res.Domains = append(res.Domains, d)
	}

	for _, q := range queryColumns {
		m := search.NewMatcher(st.Query(q.key))
		if m.Empty() {
			continue
		}
		col := q.col
		view = view.Filter(func(r *model.Record) bool { return m.MatchField(r, col) })
	}

	res.View = view
	metrics.RecordFilterDuration(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordFilterRowsOut(view.Len())
	return res
}

// domainOf returns the sorted distinct values of a stage within view.
func domainOf(view model.View, sg stage) ([]string, map[string]struct{}) {
	set := make(map[string]struct{})
	view.Each(func(r *model.Record) {
		set[sg.value(r)] = struct{}{}
	})
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	if sg.key == Year {
		sort.Slice(values, func(i, j int) bool {
			a, _ := strconv.Atoi(values[i])
			b, _ := strconv.Atoi(values[j])
			return a < b
		})
	} else {
		sort.Strings(values)
	}
	return values, set
}

func inSet(value func(*model.Record) string, selected []string) func(*model.Record) bool {
	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		set[s] = struct{}{}
	}
	return func(r *model.Record) bool {
		_, ok := set[value(r)]
		return ok
	}
}
