// Package rollup computes the derived metrics and per-entity rollups every
// dashboard view is built from. All functions read a filtered view and never
// modify it.
package rollup

import (
	"sort"
	"strconv"

	"github.com/okian/sihdash/internal/domain/model"
)

// Count is one value of a categorical column and its record count.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueCounts counts records per value of col, highest first, ties in
// encounter order. limit <= 0 keeps every value.
func ValueCounts(v model.View, col string, limit int) []Count {
	g := newGrouper[string, Count](func(r *model.Record) Count { return Count{Value: r.Value(col)} })
	v.Each(func(r *model.Record) {
		g.at(r.Value(col), r).Count++
	})
	rows := g.groups
	sortDesc(rows, func(c *Count) float64 { return float64(c.Count) })
	return head(rows, limit)
}

// YearCounts counts records per edition year, oldest first.
func YearCounts(v model.View) []Count {
	counts := make(map[int]int)
	v.Each(func(r *model.Record) { counts[r.EditionYear]++ })
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)
	out := make([]Count, len(years))
	for i, y := range years {
		out[i] = Count{Value: strconv.Itoa(y), Count: counts[y]}
	}
	return out
}

// ProblemStatementCount is a team count for one problem statement.
type ProblemStatementCount struct {
	PSID  string `json:"ps_id"`
	Title string `json:"problem_statement_title"`
	Teams int    `json:"teams"`
}

// TopProblemStatements ranks problem statements by team count.
func TopProblemStatements(v model.View, limit int) []ProblemStatementCount {
	type key struct{ id, title string }
	g := newGrouper[key, ProblemStatementCount](func(r *model.Record) ProblemStatementCount {
		return ProblemStatementCount{PSID: r.PSID, Title: r.Title}
	})
	v.Each(func(r *model.Record) {
		g.at(key{r.PSID, r.Title}, r).Teams++
	})
	rows := g.groups
	sortDesc(rows, func(c *ProblemStatementCount) float64 { return float64(c.Teams) })
	return head(rows, limit)
}

func head[T any](rows []T, limit int) []T {
	if rows == nil {
		rows = []T{}
	}
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
