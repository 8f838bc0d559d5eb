// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/sihdash/internal/domain/filter"
	"github.com/okian/sihdash/internal/domain/rollup"
	"github.com/okian/sihdash/internal/domain/types"
	"github.com/okian/sihdash/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	CreateSession(ctx context.Context) (types.Session, error)
	Filters(ctx context.Context, id string) (types.Filters, error)
	UpdateFilters(ctx context.Context, id string, u filter.Update) (types.Filters, error)
	ResetFilters(ctx context.Context, id string) (types.Filters, error)

	Overview(ctx context.Context, id string) (types.Overview, error)
	ProblemStatements(ctx context.Context, id, query, sortBy string) (types.ProblemStatements, error)
	ProblemStatement(ctx context.Context, id, psID string) (rollup.ProblemStatementDetail, error)
	Institutes(ctx context.Context, id, query, sortBy string) (types.Institutes, error)
	Teams(ctx context.Context, id, query string) (types.Teams, error)
	Explore(ctx context.Context, id string, q rollup.ExplorerQuery) (types.Explorer, error)

	Reload(ctx context.Context) (types.Reload, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	sessionHandler *SessionHandler
	viewHandler    *ViewHandler
	exportHandler  *ExportHandler
	datasetHandler *DatasetHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Get()
	}
	if o.validate == nil {
		o.validate = validator.New()
	}
	h := handler{deps: deps, logger: o.logger}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		sessionHandler: &SessionHandler{handler: h},
		viewHandler:    &ViewHandler{handler: h, validate: o.validate},
		exportHandler:  &ExportHandler{handler: h, validate: o.validate},
		datasetHandler: &DatasetHandler{handler: h},
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /api/sessions", MetricsMiddleware(s.sessionHandler.HandleCreate, "sessions"))
	mux.HandleFunc("GET /api/filters", MetricsMiddleware(s.sessionHandler.HandleGetFilters, "filters"))
	mux.HandleFunc("PUT /api/filters", MetricsMiddleware(s.sessionHandler.HandlePutFilters, "filters"))
	mux.HandleFunc("POST /api/filters/reset", MetricsMiddleware(s.sessionHandler.HandleResetFilters, "filters_reset"))

	mux.HandleFunc("GET /api/overview", MetricsMiddleware(s.viewHandler.HandleOverview, "overview"))
	mux.HandleFunc("GET /api/problem-statements", MetricsMiddleware(s.viewHandler.HandleProblemStatements, "problem_statements"))
	mux.HandleFunc("GET /api/problem-statements/{ps_id}", MetricsMiddleware(s.viewHandler.HandleProblemStatement, "problem_statement"))
	mux.HandleFunc("GET /api/institutes", MetricsMiddleware(s.viewHandler.HandleInstitutes, "institutes"))
	mux.HandleFunc("GET /api/teams", MetricsMiddleware(s.viewHandler.HandleTeams, "teams"))
	mux.HandleFunc("GET /api/explorer", MetricsMiddleware(s.viewHandler.HandleExplorer, "explorer"))

	mux.HandleFunc("GET /api/export/{kind}", MetricsMiddleware(s.exportHandler.HandleExport, "export"))

	mux.HandleFunc("POST /api/dataset/reload", MetricsMiddleware(s.datasetHandler.HandleReload, "dataset_reload"))
}

// handler carries what every route handler needs.
type handler struct {
	deps   Dependencies
	logger logger.Logger
}

// fail logs err and writes its mapped status.
func (h handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := StatusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Int("status", status),
			logger.Error(err))
	} else {
		h.logger.Debug(r.Context(), "request rejected",
			logger.String("path", r.URL.Path),
			logger.Int("status", status),
			logger.Error(err))
	}
	writeError(w, status, code, err)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = Message(err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// WriteError maps err to its status and writes the JSON error body.
func WriteError(w http.ResponseWriter, err error) {
	status, code := StatusOf(err)
	writeError(w, status, code, err)
}

// sessionID reads the session query parameter.
func sessionID(r *http.Request) string {
	return r.URL.Query().Get("session")
}
