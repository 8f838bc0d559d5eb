package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/sihdash/internal/domain/rollup"
)

// ViewHandler serves the dashboard views for a session.
type ViewHandler struct {
	handler
	validate *validator.Validate
}

// HandleOverview handles GET /api/overview.
func (h *ViewHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_overview"
	id := sessionID(r)
	if id == "" {
		h.fail(w, r, NewKind(op, ErrMissingID))
		return
	}
	ov, err := h.deps.Overview(r.Context(), id)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

// HandleProblemStatements handles GET /api/problem-statements.
func (h *ViewHandler) HandleProblemStatements(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_problem_statements"
	id := sessionID(r)
	if id == "" {
		h.fail(w, r, NewKind(op, ErrMissingID))
		return
	}
	q := r.URL.Query()
	ps, err := h.deps.ProblemStatements(r.Context(), id, q.Get("q"), q.Get("sort"))
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

// HandleProblemStatement handles GET /api/problem-statements/{ps_id}.
func (h *ViewHandler) HandleProblemStatement(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_problem_statement"
	id := sessionID(r)
	if id == "" {
		h.fail(w, r, NewKind(op, ErrMissingID))
		return
	}
	psID := strings.TrimSpace(r.PathValue("ps_id"))
	if psID == "" {
		h.fail(w, r, WrapKind(op, ErrBadRequest, fmt.Errorf("missing ps_id")))
		return
	}
	d, err := h.deps.ProblemStatement(r.Context(), id, psID)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleInstitutes handles GET /api/institutes.
func (h *ViewHandler) HandleInstitutes(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_institutes"
	id := sessionID(r)
	if id == "" {
		h.fail(w, r, NewKind(op, ErrMissingID))
		return
	}
	q := r.URL.Query()
	in, err := h.deps.Institutes(r.Context(), id, q.Get("q"), q.Get("sort"))
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, in)
}

// HandleTeams handles GET /api/teams.
func (h *ViewHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_teams"
	id := sessionID(r)
	if id == "" {
		h.fail(w, r, NewKind(op, ErrMissingID))
		return
	}
	tm, err := h.deps.Teams(r.Context(), id, r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, tm)
}

// HandleExplorer handles GET /api/explorer.
func (h *ViewHandler) HandleExplorer(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_explorer"
	id := sessionID(r)
	if id == "" {
		h.fail(w, r, NewKind(op, ErrMissingID))
		return
	}
	eq, err := parseExplorer(h.validate, r.URL.Query())
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	ex, err := h.deps.Explore(r.Context(), id, eq)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

// explorerParams mirrors the query string of the explorer endpoints.
type explorerParams struct {
	Columns  []string `validate:"omitempty,dive,required"`
	Status   []string `validate:"omitempty,dive,required"`
	MinPrize float64  `validate:"gte=0"`
	Sort     string
	Order    string `validate:"omitempty,oneof=asc desc"`
}

// parseExplorer reads the explorer query string. An explicit but empty
// columns parameter yields a non-nil empty selection, which is rejected
// downstream.
func parseExplorer(v *validator.Validate, q url.Values) (rollup.ExplorerQuery, error) {
	p := explorerParams{
		Status: splitList(q["status"]),
		Sort:   strings.TrimSpace(q.Get("sort")),
		Order:  strings.ToLower(strings.TrimSpace(q.Get("order"))),
	}
	if raw, ok := q["columns"]; ok {
		p.Columns = splitList(raw)
		if p.Columns == nil {
			p.Columns = []string{}
		}
	}
	if s := strings.TrimSpace(q.Get("min_prize")); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return rollup.ExplorerQuery{}, fmt.Errorf("min_prize: %w", err)
		}
		p.MinPrize = f
	}
	if err := v.Struct(p); err != nil {
		return rollup.ExplorerQuery{}, fmt.Errorf("invalid explorer parameters: %w", err)
	}
	return rollup.ExplorerQuery{
		Columns:    p.Columns,
		Statuses:   p.Status,
		MinPrize:   p.MinPrize,
		SortBy:     p.Sort,
		Descending: p.Order == "desc",
	}, nil
}

// splitList flattens repeated and comma-separated values. It returns nil
// when nothing remains.
func splitList(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, v := range strings.Split(item, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
