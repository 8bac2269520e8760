// Package http serves the dashboard API, the websocket state stream and the
// operational endpoints.
package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/dashboard"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store is the dashboard state the API reads and mutates.
type Store interface {
	Snapshot() dashboard.State
	Subscribe(fn dashboard.Listener) (unsubscribe func())
	SelectRegion(ctx context.Context, region domain.Region) error
	SetView(v domain.View)
	SetDarkMode(dark bool)
	SetEnvironment(p domain.EnvironmentalParams) error
	SetMapLayer(layer domain.MapLayer) error
	SetTimeStep(timeStep int) error
	SetPlaying(playing bool)
	SetSpeed(speed float64) error
}

// RegionResolver lists and resolves selectable regions.
type RegionResolver interface {
	List() []domain.Region
	Resolve(ctx context.Context, query string) (domain.Region, error)
}

// ChartRenderer writes the risk chart as SVG.
type ChartRenderer interface {
	Render(w io.Writer) error
}

// Deps are the collaborators behind the API routes.
type Deps struct {
	Store   Store
	Regions RegionResolver
	Chart   ChartRenderer
	Ready   sharedobs.ReadinessChecker
	Metrics *observability.Metrics
}

// Server exposes the dashboard API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	deps       Deps
	logger     *slog.Logger

	// runCtx scopes background selections; cancelled on Shutdown.
	runCtx    context.Context
	cancelRun context.CancelFunc
	runs      sync.WaitGroup
}

// NewServer creates an HTTP server with the API, /ws, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, deps Deps, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	runCtx, cancel := context.WithCancel(context.Background())

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		deps:      deps,
		logger:    logger,
		runCtx:    runCtx,
		cancelRun: cancel,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(deps.Ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/regions", s.handleRegions)
	mux.HandleFunc("POST /api/regions/select", s.handleSelectRegion)
	mux.HandleFunc("GET /api/view", s.handleActiveView)
	mux.HandleFunc("PUT /api/view", s.handleSetView)
	mux.HandleFunc("GET /api/views/{view}", s.handleView)
	mux.HandleFunc("PUT /api/theme", s.handleTheme)
	mux.HandleFunc("PUT /api/environment", s.handleEnvironment)
	mux.HandleFunc("PUT /api/map/layer", s.handleMapLayer)
	mux.HandleFunc("PUT /api/simulation/playback", s.handlePlayback)
	mux.HandleFunc("GET /api/charts/risk.svg", s.handleRiskChart)
	mux.HandleFunc("GET /api/reports/{kind}", s.handleReport)
	mux.HandleFunc("GET /ws", s.handleStream)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown cancels background selections, then drains connections within
// the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancelRun()
	done := make(chan struct{})
	go func() {
		s.runs.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
