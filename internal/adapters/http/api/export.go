package api

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/sihdash/internal/adapters/dataset"
	"github.com/okian/sihdash/internal/domain/rollup"
	"github.com/okian/sihdash/pkg/logger"
	"github.com/okian/sihdash/pkg/metrics"
)

// Export kinds and their fixed file names.
const (
	ExportExplorer          = "explorer"
	ExportInstitutes        = "institutes"
	ExportProblemStatements = "problem-statements"
	ExportTeams             = "teams"
)

// ExportHandler serves CSV downloads of the session's views.
type ExportHandler struct {
	handler
	validate *validator.Validate
}

// HandleExport handles GET /api/export/{kind}.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export"
	id := sessionID(r)
	if id == "" {
		h.fail(w, r, NewKind(op, ErrMissingID))
		return
	}
	kind := r.PathValue("kind")
	q := r.URL.Query()
	ctx := r.Context()

	var (
		name   string
		header []string
		rows   [][]string
	)
	switch kind {
	case ExportExplorer:
		eq, err := parseExplorer(h.validate, q)
		if err != nil {
			h.fail(w, r, WrapKind(op, ErrBadRequest, err))
			return
		}
		ex, err := h.deps.Explore(ctx, id, eq)
		if err != nil {
			h.fail(w, r, Wrap(op, err))
			return
		}
		name, header, rows = ex.Filename, ex.Columns, ex.Data
	case ExportInstitutes:
		in, err := h.deps.Institutes(ctx, id, q.Get("q"), q.Get("sort"))
		if err != nil {
			h.fail(w, r, Wrap(op, err))
			return
		}
		name = rollup.InstitutesFile
		header, rows = rollup.InstituteTable(in.Rows)
	case ExportProblemStatements:
		ps, err := h.deps.ProblemStatements(ctx, id, q.Get("q"), q.Get("sort"))
		if err != nil {
			h.fail(w, r, Wrap(op, err))
			return
		}
		name = rollup.ProblemStatementsFile
		header, rows = rollup.ProblemStatementTable(ps.Rows)
	case ExportTeams:
		tm, err := h.deps.Teams(ctx, id, q.Get("q"))
		if err != nil {
			h.fail(w, r, Wrap(op, err))
			return
		}
		name = rollup.TeamsFile
		header, rows = rollup.TeamTable(tm.Rows)
	default:
		h.fail(w, r, WrapKind(op, ErrUnknownKind, fmt.Errorf("%q", kind)))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	if err := dataset.WriteCSV(w, header, rows); err != nil {
		h.logger.Error(ctx, "export write failed", logger.String("kind", kind), logger.Error(err))
		return
	}
	metrics.RecordExport(kind)
	h.logger.Info(ctx, "export served",
		logger.String("kind", kind),
		logger.Int("rows", len(rows)),
		logger.String("filename", name))
}
