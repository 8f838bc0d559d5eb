package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/sihdash/internal/domain/filter"
	"github.com/okian/sihdash/pkg/logger"
)

// maxFilterBody bounds PUT /api/filters payloads.
const maxFilterBody = 1 << 20

// SessionHandler handles session creation and filter state.
type SessionHandler struct {
	handler
}

// HandleCreate handles POST /api/sessions.
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_session"
	sess, err := h.deps.CreateSession(r.Context())
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// HandleGetFilters handles GET /api/filters.
func (h *SessionHandler) HandleGetFilters(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_filters"
	id := sessionID(r)
	if id == "" {
		h.fail(w, r, NewKind(op, ErrMissingID))
		return
	}
	f, err := h.deps.Filters(r.Context(), id)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// HandlePutFilters handles PUT /api/filters with a filter.Update body.
func (h *SessionHandler) HandlePutFilters(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_filters"
	id := sessionID(r)
	if id == "" {
		h.fail(w, r, NewKind(op, ErrMissingID))
		return
	}
	var u filter.Update
	dec := json.NewDecoder(io.LimitReader(r.Body, maxFilterBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&u); err != nil {
		h.fail(w, r, WrapKind(op, ErrBadRequest, fmt.Errorf("invalid body: %w", err)))
		return
	}
	f, err := h.deps.UpdateFilters(r.Context(), id, u)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// HandleResetFilters handles POST /api/filters/reset.
func (h *SessionHandler) HandleResetFilters(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset_filters"
	id := sessionID(r)
	if id == "" {
		h.fail(w, r, NewKind(op, ErrMissingID))
		return
	}
	f, err := h.deps.ResetFilters(r.Context(), id)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// DatasetHandler handles dataset maintenance.
type DatasetHandler struct {
	handler
}

// HandleReload handles POST /api/dataset/reload.
func (h *DatasetHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.reload_dataset"
	res, err := h.deps.Reload(r.Context())
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	h.logger.Info(r.Context(), "dataset reloaded", logger.String("path", res.Path), logger.Int("rows", res.Records))
	writeJSON(w, http.StatusOK, res)
}
