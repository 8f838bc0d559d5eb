package rollup

import (
	"sort"

	"github.com/okian/sihdash/internal/domain/model"
)

// StatusRow aggregates one status value.
type StatusRow struct {
	Status   string   `json:"status"`
	Teams    int      `json:"teams"`
	MaxPrize *float64 `json:"max_prize"`
	IsWinner bool     `json:"is_winner"`
}

// Statuses counts records per status, most teams first. Ties keep the order
// in which statuses first appear in v.
func Statuses(v model.View) []StatusRow {
	g := newGrouper[string, StatusRow](func(r *model.Record) StatusRow {
		return StatusRow{Status: r.Status, IsWinner: r.IsWinner()}
	})
	v.Each(func(r *model.Record) {
		row := g.at(r.Status, r)
		row.Teams++
		row.MaxPrize = maxFloat(row.MaxPrize, r.PrizeMoney)
	})
	rows := head(g.groups, 0)
	sortDesc(rows, func(r *StatusRow) float64 { return float64(r.Teams) })
	return rows
}

// PrizeBucket counts winning teams awarded one amount.
type PrizeBucket struct {
	Prize float64 `json:"prize_money"`
	Teams int     `json:"teams"`
}

// PrizeDistribution counts winners per non-null prize amount, highest first.
func PrizeDistribution(v model.View) []PrizeBucket {
	counts := make(map[float64]int)
	v.Each(func(r *model.Record) {
		if r.IsWinner() && r.PrizeMoney != nil {
			counts[*r.PrizeMoney]++
		}
	})
	out := make([]PrizeBucket, 0, len(counts))
	for p, n := range counts {
		out = append(out, PrizeBucket{Prize: p, Teams: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prize > out[j].Prize })
	return out
}
