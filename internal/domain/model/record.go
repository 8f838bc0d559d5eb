// Package model contains the dataset records and views passed between layers.
package model

import (
	"strconv"
	"strings"

	"github.com/okian/sihdash/internal/domain/outcome"
)

// Column names of the dashboard CSV.
const (
	ColEditionYear         = "edition_year"
	ColPSID                = "ps_id"
	ColTitle               = "problem_statement_title"
	ColCategory            = "category"
	ColTheme               = "theme"
	ColOrganization        = "organization"
	ColDepartment          = "department"
	ColTeamID              = "team_id"
	ColTeamName            = "team_name"
	ColTeamLeader          = "team_leader_name"
	ColStatus              = "status"
	ColPrizeMoney          = "prize_money"
	ColTotalSubmission     = "total_submission"
	ColMaxSubmission       = "max_submission"
	ColInstituteName       = "institute_name"
	ColInstituteCity       = "institute_city"
	ColInstituteState      = "institute_state"
	ColAISHECode           = "aishe_code"
	ColSubmissionsReceived = "submissions_received"
	ColSubmissionsLimit    = "submissions_limit"
)

// Unknown is the sentinel for a missing text field.
const Unknown = "Unknown"

// RequiredColumns must be present in a loaded table.
func RequiredColumns() []string {
	return []string{
		ColEditionYear, ColPSID, ColTitle, ColCategory, ColTheme, ColOrganization,
		ColDepartment, ColTeamID, ColStatus, ColPrizeMoney, ColTotalSubmission,
		ColMaxSubmission, ColInstituteName, ColInstituteCity, ColInstituteState,
	}
}

// IsDerived reports whether col is computed by the loader rather than read.
func IsDerived(col string) bool {
	return col == ColSubmissionsReceived || col == ColSubmissionsLimit
}

// IsNumeric reports whether col holds numbers (possibly null).
func IsNumeric(col string) bool {
	switch col {
	case ColEditionYear, ColPrizeMoney, ColMaxSubmission, ColSubmissionsReceived, ColSubmissionsLimit:
		return true
	}
	return false
}

// Record is one team submission.
type Record struct {
	EditionYear     int
	PSID            string
	Title           string
	Category        string
	Theme           string
	Organization    string
	Department      string
	TeamID          string
	TeamName        string
	TeamLeader      string
	Status          string
	PrizeMoney      *float64
	TotalSubmission string
	MaxSubmission   *int

	SubmissionsReceived *int
	SubmissionsLimit    *int

	InstituteName  string
	InstituteCity  string
	InstituteState string
	AISHECode      string

	// Extra holds columns outside the known schema.
	Extra map[string]string
	// Nulls lists text columns that were null before the Unknown fill.
	Nulls map[string]bool
}

// IsWinner classifies the record by status.
func (r *Record) IsWinner() bool { return outcome.IsWinner(r.Status) }

// IsNull reports whether a text column was null in the source.
func (r *Record) IsNull(col string) bool { return r.Nulls[col] }

// Text returns the value of a text column.
func (r *Record) Text(col string) (string, bool) {
	switch col {
	case ColPSID:
		return r.PSID, true
	case ColTitle:
		return r.Title, true
	case ColCategory:
		return r.Category, true
	case ColTheme:
		return r.Theme, true
	case ColOrganization:
		return r.Organization, true
	case ColDepartment:
		return r.Department, true
	case ColTeamID:
		return r.TeamID, true
	case ColTeamName:
		return r.TeamName, true
	case ColTeamLeader:
		return r.TeamLeader, true
	case ColStatus:
		return r.Status, true
	case ColTotalSubmission:
		return r.TotalSubmission, true
	case ColInstituteName:
		return r.InstituteName, true
	case ColInstituteCity:
		return r.InstituteCity, true
	case ColInstituteState:
		return r.InstituteState, true
	case ColAISHECode:
		return r.AISHECode, true
	}
	v, ok := r.Extra[col]
	return v, ok
}

// SetText stores a text column. Unknown names go to Extra.
func (r *Record) SetText(col, v string) {
	switch col {
	case ColPSID:
		r.PSID = v
	case ColTitle:
		r.Title = v
	case ColCategory:
		r.Category = v
	case ColTheme:
		r.Theme = v
	case ColOrganization:
		r.Organization = v
	case ColDepartment:
		r.Department = v
	case ColTeamID:
		r.TeamID = v
	case ColTeamName:
		r.TeamName = v
	case ColTeamLeader:
		r.TeamLeader = v
	case ColStatus:
		r.Status = v
	case ColTotalSubmission:
		r.TotalSubmission = v
	case ColInstituteName:
		r.InstituteName = v
	case ColInstituteCity:
		r.InstituteCity = v
	case ColInstituteState:
		r.InstituteState = v
	case ColAISHECode:
		r.AISHECode = v
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[col] = v
	}
}

// Number returns a numeric column as float64; ok is false for null or non-numeric columns.
func (r *Record) Number(col string) (float64, bool) {
	switch col {
	case ColEditionYear:
		return float64(r.EditionYear), true
	case ColPrizeMoney:
		if r.PrizeMoney == nil {
			return 0, false
		}
		return *r.PrizeMoney, true
	case ColMaxSubmission:
		return intValue(r.MaxSubmission)
	case ColSubmissionsReceived:
		return intValue(r.SubmissionsReceived)
	case ColSubmissionsLimit:
		return intValue(r.SubmissionsLimit)
	}
	return 0, false
}

// Value formats any column for display and grouping. Numeric nulls become ""
// and text nulls read as Unknown.
func (r *Record) Value(col string) string {
	if IsNumeric(col) {
		if col == ColEditionYear {
			return strconv.Itoa(r.EditionYear)
		}
		n, ok := r.Number(col)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	v, _ := r.Text(col)
	return v
}

// Cell formats any column as an export cell. Every null becomes "", so a
// reloaded export keeps its nulls.
func (r *Record) Cell(col string) string {
	if !IsNumeric(col) && r.IsNull(col) {
		return ""
	}
	return r.Value(col)
}

// Received returns the submissions received for the record's problem statement:
// the "received" part of total_submission, or the whole value when it is a
// plain number.
func (r *Record) Received() *int {
	if r.SubmissionsReceived != nil {
		return r.SubmissionsReceived
	}
	if r.IsNull(ColTotalSubmission) || strings.Contains(r.TotalSubmission, "/") {
		return nil
	}
	if n, err := strconv.Atoi(r.TotalSubmission); err == nil {
		return &n
	}
	return nil
}

// Limit returns the maximum submissions allowed: max_submission, or the
// "limit" part of total_submission.
func (r *Record) Limit() *int {
	if r.MaxSubmission != nil {
		return r.MaxSubmission
	}
	return r.SubmissionsLimit
}

func intValue(p *int) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return float64(*p), true
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }
