// Package report renders the dashboard rollups of one dataset as terminal tables.
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/okian/sihdash/internal/adapters/dataset"
	"github.com/okian/sihdash/internal/domain/filter"
	"github.com/okian/sihdash/internal/domain/model"
	"github.com/okian/sihdash/internal/domain/rollup"
	"github.com/okian/sihdash/pkg/logger"
)

type palette struct {
	title, heading, ok, warn *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		title:   color.New(color.FgCyan, color.Bold),
		heading: color.New(color.FgYellow),
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgRed),
	}
	if noColor {
		for _, c := range []*color.Color{p.title, p.heading, p.ok, p.warn} {
			c.DisableColor()
		}
	}
	return p
}

// Run loads cfg.DataPath, applies the year and state selections and writes
// the report to w.
func Run(ctx context.Context, cfg *Config, w io.Writer) error {
	log := cfg.Logger
	if log == nil {
		log = logger.Get().Named("report")
	}
	top := cfg.Top
	if top <= 0 {
		top = defaultTop
	}
	pal := newPalette(cfg.NoColor)

	tbl, err := dataset.Load(ctx, cfg.DataPath)
	if err != nil {
		return err
	}
	if err := dataset.CheckSchema(tbl); err != nil {
		return err
	}

	st := filter.NewState()
	if err := st.Select(filter.Year, cfg.Years...); err != nil {
		return err
	}
	if err := st.Select(filter.InstituteState, cfg.States...); err != nil {
		return err
	}
	res := filter.NewEngine(filter.WithLogger(log)).Apply(ctx, tbl, st)
	view := res.View

	pal.title.Fprintf(w, "\n=== SIH Outcomes Report: %s ===\n", cfg.DataPath)
	fmt.Fprintf(w, "%d of %d records selected\n", view.Len(), tbl.Len())
	for _, key := range filter.Keys() {
		if values := res.Dropped[key]; len(values) > 0 {
			pal.warn.Fprintf(w, "No records for %s: %s\n", key, strings.Join(values, ", "))
		}
	}
	if view.Len() == 0 {
		pal.warn.Fprintln(w, "Nothing to report")
		return nil
	}

	writeSummary(w, pal, rollup.Summarize(view))
	writeCounts(w, pal, "Records by Edition", "Year", rollup.YearCounts(view))
	writeCounts(w, pal, fmt.Sprintf("Top %d Themes by Number of Teams", top), "Theme", rollup.ValueCounts(view, model.ColTheme, top))
	writeCounts(w, pal, fmt.Sprintf("Top %d States by Number of Teams", top), "State", rollup.ValueCounts(view, model.ColInstituteState, top))

	pal.heading.Fprintf(w, "\nTop %d Problem Statements by Number of Teams\n", top)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PS ID", "Title", "Teams"})
	for _, ps := range rollup.TopProblemStatements(view, top) {
		table.Append([]string{ps.PSID, ps.Title, strconv.Itoa(ps.Teams)})
	}
	table.Render()

	pal.heading.Fprintln(w, "\nOutcome Distribution")
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Status", "Teams", "Max Prize", "Winner"})
	for _, s := range rollup.Statuses(view) {
		table.Append([]string{s.Status, strconv.Itoa(s.Teams), money(s.MaxPrize), yesNo(s.IsWinner)})
	}
	table.Render()

	institutes, err := rollup.Institutes(view, "", rollup.SortTeams)
	if err != nil {
		return err
	}
	pal.heading.Fprintf(w, "\nTop %d Institutes by Number of Teams\n", top)
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Institute", "City", "State", "Teams", "Winners", "Win Rate"})
	for _, in := range head(institutes, top) {
		table.Append([]string{in.Name, in.City, in.State, strconv.Itoa(in.Teams), strconv.Itoa(in.Winners), percent(in.WinRate)})
	}
	table.Render()

	if cfg.ExportDir == "" {
		return nil
	}
	written, err := export(view, institutes, cfg.ExportDir)
	if err != nil {
		return err
	}
	for _, path := range written {
		pal.ok.Fprintf(w, "Wrote %s\n", path)
	}
	log.Info(ctx, "report exported", logger.String("dir", cfg.ExportDir), logger.Int("files", len(written)))
	return nil
}

func writeSummary(w io.Writer, pal palette, s rollup.Summary) {
	pal.heading.Fprintln(w, "\nSummary")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	for _, row := range [][]string{
		{"Teams", strconv.Itoa(s.TotalTeams)},
		{"Distinct teams", strconv.Itoa(s.DistinctTeams)},
		{"Problem statements", strconv.Itoa(s.UniqueProblemStatements)},
		{"Institutes", strconv.Itoa(s.Institutes)},
		{"States", strconv.Itoa(s.States)},
		{"Winning teams", strconv.Itoa(s.WinningTeams)},
		{"Total prize", strconv.FormatFloat(s.TotalPrize, 'f', -1, 64)},
		{"Teams per institute", strconv.FormatFloat(s.TeamsPerInstitute, 'f', 2, 64)},
	} {
		table.Append(row)
	}
	table.Render()
}

func writeCounts(w io.Writer, pal palette, title, label string, counts []rollup.Count) {
	pal.heading.Fprintf(w, "\n%s\n", title)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{label, "Teams"})
	for _, c := range counts {
		table.Append([]string{c.Value, strconv.Itoa(c.Count)})
	}
	table.Render()
}

func head[T any](rows []T, n int) []T {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

func money(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func percent(f float64) string { return strconv.FormatFloat(f*100, 'f', 1, 64) + "%" }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
