// Package chart renders value-count series of a session's view as PNG bar charts.
package chart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/okian/sihdash/internal/adapters/http/api"
	"github.com/okian/sihdash/internal/domain/types"
	"github.com/okian/sihdash/pkg/logger"
	"github.com/okian/sihdash/pkg/metrics"
)

// ErrEmptySeries is returned when a series has nothing to draw.
var ErrEmptySeries = fmt.Errorf("%w: series is empty", api.ErrNoData)

const (
	barWidth    = 40
	barSpacing  = 24
	minWidth    = 640
	height      = 480
	sideMargin  = 120
	maxLabelLen = 18
	headroom    = 1.12
)

// SeriesProvider returns chartable series for a session.
type SeriesProvider interface {
	Series(ctx context.Context, id, name string) (types.Series, error)
}

// Handler serves GET /charts/{series}.png.
type Handler struct {
	deps   SeriesProvider
	logger logger.Logger
}

// NewHandler creates a chart handler.
func NewHandler(deps SeriesProvider, opts ...Option) *Handler {
	h := &Handler{deps: deps}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = logger.Get()
	}
	return h
}

// Register attaches the chart route to mux.
func Register(_ context.Context, mux *http.ServeMux, h *Handler) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /charts/{file}", api.MetricsMiddleware(h.HandleChart, "chart"))
}

// HandleChart renders the requested series for the session.
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "chart.render"
	name, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok || name == "" {
		api.WriteError(w, api.NewKind(op, api.ErrUnknownKind))
		return
	}
	id := r.URL.Query().Get("session")
	if id == "" {
		api.WriteError(w, api.NewKind(op, api.ErrMissingID))
		return
	}
	s, err := h.deps.Series(r.Context(), id, name)
	if err != nil {
		api.WriteError(w, api.Wrap(op, err))
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, s); err != nil {
		if !errors.Is(err, ErrEmptySeries) {
			metrics.RecordChartRenderError()
			h.logger.Error(r.Context(), "chart render failed", logger.String("series", name), logger.Error(err))
		}
		api.WriteError(w, api.Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// Render draws s as a PNG bar chart.
func Render(w io.Writer, s types.Series) error {
	if len(s.Counts) == 0 {
		return ErrEmptySeries
	}
	bars := make([]gochart.Value, len(s.Counts))
	top := 0
	for i, c := range s.Counts {
		bars[i] = gochart.Value{Value: float64(c.Count), Label: label(c.Value)}
		if c.Count > top {
			top = c.Count
		}
	}
	width := sideMargin + len(bars)*(barWidth+barSpacing)
	if width < minWidth {
		width = minWidth
	}
	graph := gochart.BarChart{
		Title:      s.Title,
		Background: gochart.Style{Padding: gochart.Box{Top: 40}},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(top) * headroom},
		},
		Bars: bars,
	}
	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render %s: %w", s.Name, err)
	}
	return nil
}

func label(v string) string {
	r := []rune(v)
	if len(r) <= maxLabelLen {
		return v
	}
	return string(r[:maxLabelLen-1]) + "…"
}
