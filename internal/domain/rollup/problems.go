package rollup

import (
	"fmt"

	"github.com/okian/sihdash/internal/domain/model"
	"github.com/okian/sihdash/internal/domain/search"
)

// Problem statement rollup sort keys, besides SortTeams and SortWinners.
const (
	SortInstitutes      = "institutes"
	SortStates          = "states"
	SortSubmissionRatio = "submission_ratio"
)

// ProblemStatementRow aggregates one problem statement.
type ProblemStatementRow struct {
	PSID            string   `json:"ps_id"`
	Title           string   `json:"problem_statement_title"`
	Category        string   `json:"category"`
	Theme           string   `json:"theme"`
	Organization    string   `json:"organization"`
	Department      string   `json:"department"`
	Teams           int      `json:"teams"`
	Institutes      int      `json:"institutes"`
	States          int      `json:"states"`
	Winners         int      `json:"winners"`
	TotalSubmission *int     `json:"total_submission"`
	MaxSubmission   *int     `json:"max_submission"`
	SubmissionRatio *float64 `json:"submission_ratio"`

	institutes distinct
	states     distinct
}

var problemSorts = map[string]func(*ProblemStatementRow) *float64{ //nolint:gochecknoglobals // fixed sort table
	SortTeams:           func(r *ProblemStatementRow) *float64 { return floatOf(r.Teams) },
	SortInstitutes:      func(r *ProblemStatementRow) *float64 { return floatOf(r.Institutes) },
	SortStates:          func(r *ProblemStatementRow) *float64 { return floatOf(r.States) },
	SortWinners:         func(r *ProblemStatementRow) *float64 { return floatOf(r.Winners) },
	SortSubmissionRatio: func(r *ProblemStatementRow) *float64 { return r.SubmissionRatio },
}

// ProblemStatementSorts lists the accepted sort keys.
func ProblemStatementSorts() []string { return keys(problemSorts) }

func floatOf(n int) *float64 {
	f := float64(n)
	return &f
}

type psKey struct{ id, title, category, theme, org, dept string }

func groupProblemStatements(v model.View) []ProblemStatementRow {
	g := newGrouper[psKey, ProblemStatementRow](func(r *model.Record) ProblemStatementRow {
		return ProblemStatementRow{
			PSID: r.PSID, Title: r.Title, Category: r.Category, Theme: r.Theme,
			Organization: r.Organization, Department: r.Department,
			institutes: distinct{}, states: distinct{},
		}
	})
	v.Each(func(r *model.Record) {
		row := g.at(psKey{r.PSID, r.Title, r.Category, r.Theme, r.Organization, r.Department}, r)
		row.Teams++
		row.institutes.add(r.InstituteName)
		row.states.add(r.InstituteState)
		if r.IsWinner() {
			row.Winners++
		}
		// constant within a problem statement; max settles disagreements
		row.TotalSubmission = maxInt(row.TotalSubmission, r.Received())
		row.MaxSubmission = maxInt(row.MaxSubmission, r.Limit())
	})
	rows := g.groups
	for i := range rows {
		rows[i].Institutes = len(rows[i].institutes)
		rows[i].States = len(rows[i].states)
		rows[i].SubmissionRatio = SubmissionRatio(rows[i].TotalSubmission, rows[i].MaxSubmission)
		rows[i].institutes, rows[i].states = nil, nil
	}
	return rows
}

// ProblemStatements groups v by problem statement. query matches ps_id or
// title; sortBy defaults to teams and null ratios sort last.
func ProblemStatements(v model.View, query, sortBy string) ([]ProblemStatementRow, error) {
	if sortBy == "" {
		sortBy = SortTeams
	}
	metric, ok := problemSorts[sortBy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSort, sortBy)
	}
	m := search.NewMatcher(query)
	all := groupProblemStatements(v)
	rows := make([]ProblemStatementRow, 0, len(all))
	for _, row := range all {
		if m.Match(row.PSID) || m.Match(row.Title) {
			rows = append(rows, row)
		}
	}
	sortDescNullsLast(rows, metric)
	return rows, nil
}

// ProblemStatementDetail describes one problem statement within a view.
type ProblemStatementDetail struct {
	ProblemStatementRow
	StateCounts  []Count   `json:"state_counts"`
	WinningTeams []TeamRow `json:"winning_teams"`
}

// ProblemStatement returns the detail of psID, or ErrNotFound.
func ProblemStatement(v model.View, psID string) (ProblemStatementDetail, error) {
	sub := v.Filter(func(r *model.Record) bool { return r.PSID == psID })
	if sub.Len() == 0 {
		return ProblemStatementDetail{}, fmt.Errorf("%w: problem statement %q", ErrNotFound, psID)
	}
	rows := groupProblemStatements(sub)
	top := rows[0]
	// merge rows whose descriptive fields disagree
	for _, r := range rows[1:] {
		top.Teams += r.Teams
		top.Winners += r.Winners
		top.TotalSubmission = maxInt(top.TotalSubmission, r.TotalSubmission)
		top.MaxSubmission = maxInt(top.MaxSubmission, r.MaxSubmission)
	}
	if len(rows) > 1 {
		inst, states := distinct{}, distinct{}
		sub.Each(func(r *model.Record) {
			inst.add(r.InstituteName)
			states.add(r.InstituteState)
		})
		top.Institutes, top.States = len(inst), len(states)
		top.SubmissionRatio = SubmissionRatio(top.TotalSubmission, top.MaxSubmission)
	}
	return ProblemStatementDetail{
		ProblemStatementRow: top,
		StateCounts:         ValueCounts(sub, model.ColInstituteState, 0),
		WinningTeams:        Teams(sub.Filter((*model.Record).IsWinner), ""),
	}, nil
}
