package rollup

import (
	"fmt"
	"sort"

	"github.com/okian/sihdash/internal/domain/model"
	"github.com/okian/sihdash/internal/domain/search"
)

// Institute rollup sort keys.
const (
	SortTeams    = "teams"
	SortUniquePS = "unique_ps"
	SortWinners  = "winners"
	SortWinRate  = "win_rate"
)

// InstituteRow aggregates one (institute, city, state).
type InstituteRow struct {
	Name     string  `json:"institute_name"`
	City     string  `json:"institute_city"`
	State    string  `json:"institute_state"`
	Teams    int     `json:"teams"`
	UniquePS int     `json:"unique_ps"`
	Winners  int     `json:"winners"`
	WinRate  float64 `json:"win_rate"`

	ps distinct
}

var instituteSorts = map[string]func(*InstituteRow) float64{ //nolint:gochecknoglobals // fixed sort table
	SortTeams:    func(r *InstituteRow) float64 { return float64(r.Teams) },
	SortUniquePS: func(r *InstituteRow) float64 { return float64(r.UniquePS) },
	SortWinners:  func(r *InstituteRow) float64 { return float64(r.Winners) },
	SortWinRate:  func(r *InstituteRow) float64 { return r.WinRate },
}

// InstituteSorts lists the accepted sort keys.
func InstituteSorts() []string { return keys(instituteSorts) }

// Institutes groups v by institute. query filters by institute name; sortBy
// defaults to teams.
func Institutes(v model.View, query, sortBy string) ([]InstituteRow, error) {
	if sortBy == "" {
		sortBy = SortTeams
	}
	metric, ok := instituteSorts[sortBy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSort, sortBy)
	}

	type key struct{ name, city, state string }
	g := newGrouper[key, InstituteRow](func(r *model.Record) InstituteRow {
		return InstituteRow{Name: r.InstituteName, City: r.InstituteCity, State: r.InstituteState, ps: distinct{}}
	})
	v.Each(func(r *model.Record) {
		row := g.at(key{r.InstituteName, r.InstituteCity, r.InstituteState}, r)
		row.Teams++
		row.ps.add(r.PSID)
		if r.IsWinner() {
			row.Winners++
		}
	})

	m := search.NewMatcher(query)
	rows := make([]InstituteRow, 0, len(g.groups))
	for _, row := range g.groups {
		if !m.Match(row.Name) {
			continue
		}
		row.UniquePS = len(row.ps)
		row.WinRate = WinRate(row.Winners, row.Teams)
		row.ps = nil
		rows = append(rows, row)
	}
	sortDesc(rows, metric)
	return rows, nil
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
