package rollup

import (
	"github.com/okian/sihdash/internal/domain/model"
	"github.com/okian/sihdash/internal/domain/search"
)

// TeamRow is one line of the team listing.
type TeamRow struct {
	TeamID         string   `json:"team_id"`
	TeamName       string   `json:"team_name"`
	TeamLeader     string   `json:"team_leader_name"`
	Status         string   `json:"status"`
	PrizeMoney     *float64 `json:"prize_money"`
	IsWinner       bool     `json:"is_winner"`
	PSID           string   `json:"ps_id"`
	Title          string   `json:"problem_statement_title"`
	InstituteName  string   `json:"institute_name"`
	InstituteState string   `json:"institute_state"`
	EditionYear    int      `json:"edition_year"`
}

// Teams lists records matching query on team name or leader, highest prize
// first with nulls last.
func Teams(v model.View, query string) []TeamRow {
	m := search.NewMatcher(query)
	rows := make([]TeamRow, 0, v.Len())
	v.Each(func(r *model.Record) {
		if !m.MatchAny(r, model.ColTeamName, model.ColTeamLeader) {
			return
		}
		rows = append(rows, TeamRow{
			TeamID:         r.TeamID,
			TeamName:       r.TeamName,
			TeamLeader:     r.TeamLeader,
			Status:         r.Status,
			PrizeMoney:     r.PrizeMoney,
			IsWinner:       r.IsWinner(),
			PSID:           r.PSID,
			Title:          r.Title,
			InstituteName:  r.InstituteName,
			InstituteState: r.InstituteState,
			EditionYear:    r.EditionYear,
		})
	})
	sortDescNullsLast(rows, func(t *TeamRow) *float64 { return t.PrizeMoney })
	return rows
}

// TeamTotals are the headline numbers of the teams view.
type TeamTotals struct {
	DistinctTeams        int     `json:"distinct_teams"`
	DistinctWinningTeams int     `json:"distinct_winning_teams"`
	TotalPrize           float64 `json:"total_prize"`
}

// TotalsOf derives team totals from a summary.
func TotalsOf(s Summary) TeamTotals {
	return TeamTotals{
		DistinctTeams:        s.DistinctTeams,
		DistinctWinningTeams: s.DistinctWinningTeams,
		TotalPrize:           s.TotalPrize,
	}
}
