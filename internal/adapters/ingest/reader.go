package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/sihdash/internal/domain/model"
)

const utf8BOM = "\ufeff"

// table is a header-addressed CSV.
type table struct {
	index map[string]int
	rows  [][]string
}

func (t table) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[i])
	if strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}

func readTable(r io.Reader, source string, required ...string) (table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty file")
		}
		return table{}, fmt.Errorf("%s: read header: %w", source, err)
	}
	t := table{index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	var missing []string
	for _, c := range required {
		if _, ok := t.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return table{}, fmt.Errorf("%w: %s: %s", ErrMissingColumns, source, strings.Join(missing, ", "))
	}
	t.rows, err = cr.ReadAll()
	if err != nil {
		return table{}, fmt.Errorf("%s: %w", source, err)
	}
	return t, nil
}

// ReadProblemStatements reads the problem statement listing. Repeated
// numbers keep their first row.
func ReadProblemStatements(r io.Reader, source string) ([]ProblemStatement, error) {
	t, err := readTable(r, source, colPSNumber, model.ColTitle, model.ColCategory, model.ColTheme, model.ColTotalSubmission)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(t.rows))
	out := make([]ProblemStatement, 0, len(t.rows))
	for _, row := range t.rows {
		ps := ProblemStatement{
			Number:          t.get(row, colPSNumber),
			Title:           t.get(row, model.ColTitle),
			Category:        t.get(row, model.ColCategory),
			Theme:           t.get(row, model.ColTheme),
			TotalSubmission: t.get(row, model.ColTotalSubmission),
		}
		if _, dup := seen[ps.Number]; dup {
			continue
		}
		seen[ps.Number] = struct{}{}
		out = append(out, ps)
	}
	return out, nil
}

// ReadTeams reads one shortlisted batch.
func ReadTeams(r io.Reader, source string) ([]Team, error) {
	t, err := readTable(r, source, model.ColPSID, model.ColTeamID, model.ColTeamName, model.ColStatus)
	if err != nil {
		return nil, err
	}
	out := make([]Team, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, Team{
			PSID:           t.get(row, model.ColPSID),
			Organization:   t.get(row, model.ColOrganization),
			Department:     t.get(row, model.ColDepartment),
			SerialNo:       t.get(row, colSerialNo),
			IdeaID:         t.get(row, colIdeaID),
			TeamID:         t.get(row, model.ColTeamID),
			TeamName:       t.get(row, model.ColTeamName),
			TeamLeader:     t.get(row, model.ColTeamLeader),
			AISHECode:      t.get(row, model.ColAISHECode),
			InstituteName:  t.get(row, model.ColInstituteName),
			InstituteCity:  t.get(row, model.ColInstituteCity),
			InstituteState: t.get(row, model.ColInstituteState),
			Status:         t.get(row, model.ColStatus),
		})
	}
	return out, nil
}

// ReadResults reads the grand finale results. Rows without a ps_id are dropped.
func ReadResults(r io.Reader, source string) ([]Result, error) {
	t, err := readTable(r, source, model.ColPSID, model.ColTeamID, model.ColStatus, model.ColPrizeMoney)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(t.rows))
	for _, row := range t.rows {
		res := Result{
			PSID:       t.get(row, model.ColPSID),
			TeamID:     t.get(row, model.ColTeamID),
			IdeaID:     t.get(row, colIdeaID),
			TeamName:   t.get(row, model.ColTeamName),
			Status:     t.get(row, model.ColStatus),
			PrizeMoney: t.get(row, model.ColPrizeMoney),
		}
		if res.PSID == "" {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}
