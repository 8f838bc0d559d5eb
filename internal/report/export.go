package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/sihdash/internal/adapters/dataset"
	"github.com/okian/sihdash/internal/domain/model"
	"github.com/okian/sihdash/internal/domain/rollup"
)

const (
	exportDirPermission  = 0o755
	exportFilePermission = 0o644
)

// export writes the institute, problem statement and team tables into dir.
func export(v model.View, institutes []rollup.InstituteRow, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, exportDirPermission); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	statements, err := rollup.ProblemStatements(v, "", rollup.SortTeams)
	if err != nil {
		return nil, err
	}

	files := []struct {
		name   string
		render func() ([]string, [][]string)
	}{
		{rollup.InstitutesFile, func() ([]string, [][]string) { return rollup.InstituteTable(institutes) }},
		{rollup.ProblemStatementsFile, func() ([]string, [][]string) { return rollup.ProblemStatementTable(statements) }},
		{rollup.TeamsFile, func() ([]string, [][]string) { return rollup.TeamTable(rollup.Teams(v, "")) }},
	}
	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		header, rows := f.render()
		if err := writeFile(path, header, rows); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, header []string, rows [][]string) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, exportFilePermission)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return dataset.WriteCSV(f, header, rows)
}
