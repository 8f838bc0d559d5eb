package rollup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/sihdash/internal/domain/model"
	"github.com/okian/sihdash/internal/domain/outcome"
)

// DefaultExplorerColumns are shown when no columns are requested.
func DefaultExplorerColumns() []string {
	return []string{
		model.ColEditionYear, model.ColPSID, model.ColTitle, model.ColCategory,
		model.ColTeamName, model.ColStatus, model.ColPrizeMoney,
		model.ColInstituteName, model.ColInstituteState,
	}
}

// ExplorerQuery narrows and orders the explorer table. A nil Columns means
// the defaults; a non-nil empty slice is rejected.
type ExplorerQuery struct {
	Columns    []string
	Statuses   []string
	MinPrize   float64
	SortBy     string
	Descending bool
}

// ExplorerResult is the explorer table over a view.
type ExplorerResult struct {
	Columns       []string   `json:"columns"`
	StatusOptions []string   `json:"status_options"`
	Statuses      []string   `json:"statuses"`
	Rows          model.View `json:"-"`
	Filename      string     `json:"filename"`
}

// Explore applies the explorer controls to v. Requested statuses outside the
// status options of v are dropped.
func Explore(v model.View, q ExplorerQuery) (ExplorerResult, error) {
	cols, err := explorerColumns(v.Table(), q.Columns)
	if err != nil {
		return ExplorerResult{}, err
	}
	if q.MinPrize < 0 {
		return ExplorerResult{}, fmt.Errorf("%w: min_prize must not be negative", ErrInvalidQuery)
	}
	if q.SortBy != "" && !contains(cols, q.SortBy) {
		return ExplorerResult{}, fmt.Errorf("%w: sort column %q is not selected", ErrInvalidQuery, q.SortBy)
	}

	var encountered []string
	years := make([]int, 0, 4)
	seenYear := make(map[int]struct{})
	v.Each(func(r *model.Record) {
		encountered = append(encountered, r.Status)
		if _, ok := seenYear[r.EditionYear]; !ok {
			seenYear[r.EditionYear] = struct{}{}
			years = append(years, r.EditionYear)
		}
	})
	options := outcome.Order(encountered)

	statuses := make([]string, 0, len(q.Statuses))
	for _, s := range q.Statuses {
		if contains(options, s) && !contains(statuses, s) {
			statuses = append(statuses, s)
		}
	}

	rows := v.Filter(func(r *model.Record) bool {
		if len(statuses) > 0 && !contains(statuses, r.Status) {
			return false
		}
		prize := 0.0
		if r.PrizeMoney != nil {
			prize = *r.PrizeMoney
		}
		return prize >= q.MinPrize
	})
	if q.SortBy != "" {
		rows = sortView(rows, q.SortBy, q.Descending)
	}

	return ExplorerResult{
		Columns:       cols,
		StatusOptions: options,
		Statuses:      statuses,
		Rows:          rows,
		Filename:      Filename(years, rows.Len()),
	}, nil
}

// Cells renders the selected columns of every row as export cells.
func (e ExplorerResult) Cells() [][]string {
	out := make([][]string, 0, e.Rows.Len())
	e.Rows.Each(func(r *model.Record) {
		row := make([]string, len(e.Columns))
		for i, c := range e.Columns {
			row[i] = r.Cell(c)
		}
		out = append(out, row)
	})
	return out
}

func explorerColumns(t *model.Table, requested []string) ([]string, error) {
	if requested == nil {
		requested = DefaultExplorerColumns()
	}
	cols := make([]string, 0, len(requested))
	for _, c := range requested {
		c = strings.TrimSpace(c)
		if t != nil && t.HasColumn(c) && !contains(cols, c) {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: select at least one column", ErrInvalidQuery)
	}
	return cols, nil
}

// sortView orders rows by col, nulls last in both directions, ties stable.
func sortView(v model.View, col string, desc bool) model.View {
	perm := make([]int, v.Len())
	for i := range perm {
		perm[i] = i
	}
	numeric := model.IsNumeric(col)
	sort.SliceStable(perm, func(i, j int) bool {
		a, b := v.At(perm[i]), v.At(perm[j])
		if numeric {
			x, okA := a.Number(col)
			y, okB := b.Number(col)
			switch {
			case !okA:
				return false
			case !okB:
				return true
			case desc:
				return x > y
			}
			return x < y
		}
		x, y := a.Value(col), b.Value(col)
		if a.IsNull(col) != b.IsNull(col) {
			return b.IsNull(col)
		}
		if desc {
			return x > y
		}
		return x < y
	})
	return v.Reorder(perm)
}

// Filename names an explorer download after the edition years it covers and
// its row count.
func Filename(years []int, rows int) string {
	uniq := make(map[int]struct{}, len(years))
	sorted := make([]int, 0, len(years))
	for _, y := range years {
		if _, ok := uniq[y]; !ok {
			uniq[y] = struct{}{}
			sorted = append(sorted, y)
		}
	}
	sort.Ints(sorted)
	years = sorted
	var span string
	switch len(years) {
	case 0:
		span = "unknown"
	case 1:
		span = fmt.Sprintf("%d", years[0])
	default:
		span = fmt.Sprintf("%d-%d", years[0], years[len(years)-1])
	}
	return fmt.Sprintf("sih_%s_filtered_dataset_%d_records.csv", span, rows)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
