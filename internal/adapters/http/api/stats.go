package api

import (
	"context"
	"net/http"

	"github.com/okian/sihdash/internal/domain/types"
)

// StatsProvider reports service state.
type StatsProvider interface {
	Stats(ctx context.Context) types.Stats
}

// StatsHandler serves GET /stats.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a stats handler over p.
func NewStatsHandler(p StatsProvider) *StatsHandler {
	return &StatsHandler{provider: p}
}

// HandleStats handles GET /stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.provider.Stats(r.Context()))
}
