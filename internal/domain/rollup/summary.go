package rollup

import "github.com/okian/sihdash/internal/domain/model"

// Summary holds the headline scalars of a view.
type Summary struct {
	TotalTeams               int     `json:"total_teams"`
	DistinctTeams            int     `json:"distinct_teams"`
	UniqueProblemStatements  int     `json:"unique_problem_statements"`
	Institutes               int     `json:"institutes"`
	States                   int     `json:"states"`
	Cities                   int     `json:"cities"`
	Organizations            int     `json:"organizations"`
	Departments              int     `json:"departments"`
	WinningTeams             int     `json:"winning_teams"`
	DistinctWinningTeams     int     `json:"distinct_winning_teams"`
	TotalPrize               float64 `json:"total_prize"`
	TeamsPerInstitute        float64 `json:"teams_per_institute"`
	TeamsPerProblemStatement float64 `json:"teams_per_problem_statement"`
}

// Summarize computes the headline scalars. Prize totals skip null amounts.
func Summarize(v model.View) Summary {
	var (
		teams, ps, inst, states, cities = distinct{}, distinct{}, distinct{}, distinct{}, distinct{}
		orgs, depts, winners            = distinct{}, distinct{}, distinct{}
		s                               Summary
	)
	v.Each(func(r *model.Record) {
		teams.add(r.TeamID)
		ps.add(r.PSID)
		inst.add(r.InstituteName)
		states.add(r.InstituteState)
		cities.add(r.InstituteCity)
		orgs.add(r.Organization)
		depts.add(r.Department)
		if r.IsWinner() {
			s.WinningTeams++
			winners.add(r.TeamID)
			if r.PrizeMoney != nil {
				s.TotalPrize += *r.PrizeMoney
			}
		}
	})
	s.TotalTeams = v.Len()
	s.DistinctTeams = len(teams)
	s.UniqueProblemStatements = len(ps)
	s.Institutes = len(inst)
	s.States = len(states)
	s.Cities = len(cities)
	s.Organizations = len(orgs)
	s.Departments = len(depts)
	s.DistinctWinningTeams = len(winners)
	s.TeamsPerInstitute = mean(s.TotalTeams, s.Institutes)
	s.TeamsPerProblemStatement = mean(s.TotalTeams, s.UniqueProblemStatements)
	return s
}
