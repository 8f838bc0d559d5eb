package rollup

import (
	"strconv"
)

// Tabular rollups render as a header and string cells for CSV export.
// Nulls become empty cells; floats keep full precision.

// Fixed export file names.
const (
	InstitutesFile        = "institute_summary.csv"
	ProblemStatementsFile = "problem_statements_summary.csv"
	TeamsFile             = "teams_data.csv"
)

// InstituteTable renders institute rows.
func InstituteTable(rows []InstituteRow) ([]string, [][]string) {
	header := []string{"institute_name", "institute_city", "institute_state", "teams", "unique_ps", "winners", "win_rate"}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Name, r.City, r.State, itoa(r.Teams), itoa(r.UniquePS), itoa(r.Winners), ftoa(r.WinRate)}
	}
	return header, out
}

// ProblemStatementTable renders problem statement rows.
func ProblemStatementTable(rows []ProblemStatementRow) ([]string, [][]string) {
	header := []string{
		"ps_id", "problem_statement_title", "category", "theme", "organization", "department",
		"teams", "institutes", "states", "winners", "total_submission", "max_submission", "submission_ratio",
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			r.PSID, r.Title, r.Category, r.Theme, r.Organization, r.Department,
			itoa(r.Teams), itoa(r.Institutes), itoa(r.States), itoa(r.Winners),
			optInt(r.TotalSubmission), optInt(r.MaxSubmission), optFloat(r.SubmissionRatio),
		}
	}
	return header, out
}

// TeamTable renders team rows.
func TeamTable(rows []TeamRow) ([]string, [][]string) {
	header := []string{
		"team_id", "team_name", "team_leader_name", "status", "prize_money",
		"ps_id", "problem_statement_title", "institute_name", "institute_state", "edition_year",
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			r.TeamID, r.TeamName, r.TeamLeader, r.Status, optFloat(r.PrizeMoney),
			r.PSID, r.Title, r.InstituteName, r.InstituteState, itoa(r.EditionYear),
		}
	}
	return header, out
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func optInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func optFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return ftoa(*p)
}
