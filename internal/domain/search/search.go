// Package search implements the case-insensitive substring match used by
// free-text filters and rollup search boxes.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/okian/sihdash/internal/domain/model"
)

// Matcher tests text against one query.
type Matcher struct {
	needle string
	caser  cases.Caser
}

// NewMatcher folds q once. Surrounding whitespace is ignored.
func NewMatcher(q string) *Matcher {
	m := &Matcher{caser: cases.Fold()}
	m.needle = m.caser.String(strings.TrimSpace(q))
	return m
}

// Empty reports whether the query matches everything.
func (m *Matcher) Empty() bool { return m.needle == "" }

// Match reports whether s contains the query, ignoring case.
func (m *Matcher) Match(s string) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(m.caser.String(s), m.needle)
}

// MatchField matches a record's text column. A null field never matches a
// non-empty query.
func (m *Matcher) MatchField(r *model.Record, col string) bool {
	if m.needle == "" {
		return true
	}
	if r.IsNull(col) {
		return false
	}
	v, ok := r.Text(col)
	return ok && m.Match(v)
}

// MatchAny reports whether any of cols matches.
func (m *Matcher) MatchAny(r *model.Record, cols ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, c := range cols {
		if m.MatchField(r, c) {
			return true
		}
	}
	return false
}
