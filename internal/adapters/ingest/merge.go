package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/okian/sihdash/internal/adapters/dataset"
	"github.com/okian/sihdash/pkg/logger"
)

// Inputs names the scraper outputs of one edition.
type Inputs struct {
	ProblemStatements string
	Shortlisted       string // glob of batch files
	Results           string // optional
	Year              int
}

// Merge joins teams to their problem statement and overlays finale results
// by team id. Results for teams missing from the shortlist are appended.
func Merge(year int, statements []ProblemStatement, teams []Team, results []Result) [][]string {
	byNumber := make(map[string]ProblemStatement, len(statements))
	for _, ps := range statements {
		byNumber[ps.Number] = ps
	}
	byTeam := make(map[string]Result, len(results))
	for _, res := range results {
		if _, dup := byTeam[res.TeamID]; !dup {
			byTeam[res.TeamID] = res
		}
	}

	y := strconv.Itoa(year)
	rows := make([][]string, 0, len(teams)+len(results))
	placed := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		ps := byNumber[t.PSID]
		status, prize := t.Status, ""
		if res, ok := byTeam[t.TeamID]; ok && t.TeamID != "" {
			status, prize = res.Status, res.PrizeMoney
			placed[t.TeamID] = struct{}{}
		}
		rows = append(rows, []string{
			y, t.PSID, ps.Title, ps.Category, ps.Theme,
			t.Organization, t.Department, t.SerialNo, t.IdeaID, t.TeamID,
			t.TeamName, t.TeamLeader, status, prize,
			ps.TotalSubmission, limitOf(ps.TotalSubmission), t.InstituteName,
			t.InstituteCity, t.InstituteState, t.AISHECode,
		})
	}
	for _, res := range results {
		if _, ok := placed[res.TeamID]; ok {
			continue
		}
		placed[res.TeamID] = struct{}{}
		ps := byNumber[res.PSID]
		rows = append(rows, []string{
			y, res.PSID, ps.Title, ps.Category, ps.Theme,
			"", "", "", res.IdeaID, res.TeamID,
			res.TeamName, "", res.Status, res.PrizeMoney,
			ps.TotalSubmission, limitOf(ps.TotalSubmission), "",
			"", "", "",
		})
	}
	return rows
}

// Run reads the inputs, merges them and writes the dashboard CSV to w.
// Shortlisted batches are read concurrently and kept in file-name order.
func Run(ctx context.Context, in Inputs, w io.Writer, log logger.Logger) (int, error) {
	statements, err := readFile(in.ProblemStatements, ReadProblemStatements)
	if err != nil {
		return 0, err
	}

	batches, err := filepath.Glob(in.Shortlisted)
	if err != nil {
		return 0, fmt.Errorf("shortlisted glob: %w", err)
	}
	if len(batches) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoInput, in.Shortlisted)
	}
	sort.Strings(batches)

	parts := make([][]Team, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range batches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			teams, err := readFile(path, ReadTeams)
			if err != nil {
				return err
			}
			parts[i] = teams
			log.Debug(gctx, "read shortlisted batch", logger.String("path", path), logger.Int("teams", len(teams)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	var teams []Team
	for _, p := range parts {
		teams = append(teams, p...)
	}

	var results []Result
	if in.Results != "" {
		if results, err = readFile(in.Results, ReadResults); err != nil {
			return 0, err
		}
	}

	rows := Merge(in.Year, statements, teams, results)
	if err := dataset.WriteCSV(w, Columns(), rows); err != nil {
		return 0, err
	}
	log.Info(ctx, "merged scraper outputs",
		logger.Int("problem_statements", len(statements)),
		logger.Int("batches", len(batches)),
		logger.Int("teams", len(teams)),
		logger.Int("results", len(results)),
		logger.Int("rows", len(rows)))
	return len(rows), nil
}

func readFile[T any](path string, read func(io.Reader, string) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()
	return read(f, filepath.Base(path))
}
