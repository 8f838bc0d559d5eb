package rollup

import (
	"sort"

	"github.com/okian/sihdash/internal/domain/model"
)

// grouper collects records by key, keeping first-encounter order of groups.
type grouper[K comparable, G any] struct {
	index  map[K]int
	groups []G
	newG   func(*model.Record) G
}

func newGrouper[K comparable, G any](newG func(*model.Record) G) *grouper[K, G] {
	return &grouper[K, G]{index: make(map[K]int), newG: newG}
}

// at returns the group for key, creating it from r on first sight.
func (g *grouper[K, G]) at(key K, r *model.Record) *G {
	i, ok := g.index[key]
	if !ok {
		i = len(g.groups)
		g.index[key] = i
		g.groups = append(g.groups, g.newG(r))
	}
	return &g.groups[i]
}

// distinct counts distinct strings.
type distinct map[string]struct{}

func (d distinct) add(v string) { d[v] = struct{}{} }

// sortDesc stable-sorts rows by metric, highest first.
func sortDesc[T any](rows []T, metric func(*T) float64) {
	sort.SliceStable(rows, func(i, j int) bool {
		return metric(&rows[i]) > metric(&rows[j])
	})
}

// sortDescNullsLast stable-sorts rows by an optional metric, highest first, nulls last.
func sortDescNullsLast[T any](rows []T, metric func(*T) *float64) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := metric(&rows[i]), metric(&rows[j])
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return *a > *b
	})
}
