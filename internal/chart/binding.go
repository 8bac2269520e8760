// Package chart renders the risk-analysis donut chart and manages the single
// live chart instance bound to a drawing surface.
package chart

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/couchcryptid/wildfire-risk-dashboard/internal/dashboard"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/observability"
)

const (
	promptNoData    = "Select a region to view risk analysis"
	promptNoSurface = "Chart surface unavailable"

	fallbackWidth  = 400
	fallbackHeight = 400
)

// ErrClosed is returned by Bind after Close.
var ErrClosed = errors.New("chart binding closed")

// StateSource publishes dashboard snapshots.
type StateSource interface {
	Subscribe(fn dashboard.Listener) (unsubscribe func())
}

// Binding keeps at most one chart attached to its surface, rebuilding it
// whenever the prediction changes.
type Binding struct {
	surface Surface
	factory Factory
	logger  *slog.Logger
	metrics *observability.Metrics

	mu      sync.Mutex
	current Chart
	bound   *domain.PredictionData
	live    int
	closed  bool
}

// NewBinding creates a Binding drawing onto surface. A nil factory selects
// NewDonut. surface may be nil, in which case only placeholders are rendered.
func NewBinding(surface Surface, factory Factory, logger *slog.Logger, metrics *observability.Metrics) *Binding {
	if factory == nil {
		factory = NewDonut
	}
	return &Binding{surface: surface, factory: factory, logger: logger, metrics: metrics}
}

// Bind replaces the live chart with one for prediction. The previous chart is
// destroyed before the new one is constructed. With no surface or a nil
// prediction the binding falls back to the placeholder.
func (b *Binding) Bind(prediction *domain.PredictionData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	b.releaseLocked()
	b.bound = prediction

	if b.surface == nil || prediction == nil {
		return nil
	}

	c, err := b.factory(b.surface, NewBreakdown(prediction))
	if err != nil {
		return fmt.Errorf("construct risk chart for %q: %w", prediction.Region, err)
	}
	b.current = c
	b.live++
	if b.metrics != nil {
		b.metrics.ChartRenders.Inc()
		b.metrics.LiveCharts.Set(float64(b.live))
	}
	return nil
}

// Render writes the live chart, or the placeholder prompt when none is bound.
func (b *Binding) Render(w io.Writer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current != nil {
		return b.current.Render(w)
	}

	width, height := fallbackWidth, fallbackHeight
	if b.surface != nil {
		width, height = b.surface.Size()
	}
	msg := promptNoData
	if b.surface == nil && b.bound != nil {
		msg = promptNoSurface
	}
	return writePlaceholder(w, width, height, msg)
}

// Stats returns the breakdown for the bound prediction.
func (b *Binding) Stats() (Breakdown, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bound == nil {
		return Breakdown{}, false
	}
	return NewBreakdown(b.bound), true
}

// Live reports the number of chart instances currently alive.
func (b *Binding) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live
}

// Close destroys the live chart. Further Bind calls return ErrClosed.
func (b *Binding) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
	b.bound = nil
	b.closed = true
}

// Watch rebinds on every snapshot whose prediction differs from the bound one.
func (b *Binding) Watch(src StateSource) (stop func()) {
	return src.Subscribe(func(st dashboard.State) {
		b.mu.Lock()
		same := st.Prediction == b.bound
		b.mu.Unlock()
		if same {
			return
		}
		if err := b.Bind(st.Prediction); err != nil && !errors.Is(err, ErrClosed) {
			b.logger.Error("risk chart rebind failed", "error", err)
		}
	})
}

func (b *Binding) releaseLocked() {
	if b.current == nil {
		return
	}
	b.current.Destroy()
	b.current = nil
	b.live--
	if b.metrics != nil {
		b.metrics.LiveCharts.Set(float64(b.live))
	}
}
