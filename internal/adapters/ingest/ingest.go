// Package ingest merges the scraper outputs (problem statements, shortlisted
// team batches, grand finale results) into the dashboard CSV.
package ingest

import (
	"strings"

	"github.com/okian/sihdash/internal/domain/model"
)

// Scraper column names that differ from the dashboard schema.
const (
	colPSNumber = "ps_number"
	colSerialNo = "serial_no"
	colIdeaID   = "idea_id"
)

// ProblemStatement is one row of the problem statement listing.
type ProblemStatement struct {
	Number          string
	Title           string
	Category        string
	Theme           string
	TotalSubmission string
}

// Team is one row of a shortlisted batch.
type Team struct {
	PSID           string
	Organization   string
	Department     string
	SerialNo       string
	IdeaID         string
	TeamID         string
	TeamName       string
	TeamLeader     string
	AISHECode      string
	InstituteName  string
	InstituteCity  string
	InstituteState string
	Status         string
}

// Result is one row of the grand finale results.
type Result struct {
	PSID       string
	TeamID     string
	IdeaID     string
	TeamName   string
	Status     string
	PrizeMoney string
}

// Columns is the header of the merged CSV.
func Columns() []string {
	return []string{
		model.ColEditionYear, model.ColPSID, model.ColTitle, model.ColCategory, model.ColTheme,
		model.ColOrganization, model.ColDepartment, colSerialNo, colIdeaID, model.ColTeamID,
		model.ColTeamName, model.ColTeamLeader, model.ColStatus, model.ColPrizeMoney,
		model.ColTotalSubmission, model.ColMaxSubmission, model.ColInstituteName,
		model.ColInstituteCity, model.ColInstituteState, model.ColAISHECode,
	}
}

// limitOf returns the limit part of a "received/limit" submission count.
func limitOf(total string) string {
	_, limit, ok := strings.Cut(total, "/")
	if !ok {
		return ""
	}
	return strings.TrimSpace(limit)
}
