// Package dashboard owns the dashboard's top-level state and the region
// selection workflow that drives processing and data generation.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/observability"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/processing"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// ErrSuperseded is returned by SelectRegion when a newer selection started
// before the run finished. The superseded run leaves state untouched.
var ErrSuperseded = errors.New("selection superseded by a newer region")

// Runner executes the processing stages for a region.
type Runner interface {
	Run(ctx context.Context, region domain.Region, publish processing.Publisher) error
}

// DataGenerator materializes the datasets for a processed region.
type DataGenerator interface {
	GeneratePrediction(region domain.Region) *domain.PredictionData
	GenerateSimulation(region domain.Region) *domain.SimulationData
}

// ResultPublisher receives every completed analysis.
type ResultPublisher interface {
	PublishResult(ctx context.Context, result domain.AnalysisResult) error
}

// Listener is called with a snapshot after every state change. Listeners are
// invoked one at a time in version order and must not mutate the store
// synchronously.
type Listener func(State)

// Store holds the dashboard state behind a mutex and exposes one method per
// logical transition.
type Store struct {
	runner    Runner
	generator DataGenerator
	publisher ResultPublisher
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	publishAttempts int
	publishBackoff  time.Duration

	mu        sync.Mutex
	state     State
	token     uint64
	cancelRun context.CancelFunc
	listeners map[uint64]Listener
	nextID    uint64

	notifyMu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithResultPublisher forwards completed analyses to p.
func WithResultPublisher(p ResultPublisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithClock sets the clock used for completion timestamps, durations and
// publish retries.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithPublishRetry sets how often a failed publish is attempted and the
// initial backoff between attempts.
func WithPublishRetry(attempts int, backoff time.Duration) Option {
	return func(s *Store) {
		s.publishAttempts = attempts
		s.publishBackoff = backoff
	}
}

// NewStore creates a Store in its initial state.
func NewStore(runner Runner, generator DataGenerator, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Store {
	s := &Store{
		runner:          runner,
		generator:       generator,
		clock:           clockwork.NewRealClock(),
		logger:          logger,
		metrics:         metrics,
		publishAttempts: 3,
		publishBackoff:  200 * time.Millisecond,
		state:           initialState(),
		listeners:       make(map[uint64]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn for every subsequent state change and returns a
// function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// CheckReadiness reports the store as ready once it has been constructed
// with its collaborators.
func (s *Store) CheckReadiness(_ context.Context) error {
	if s.runner == nil || s.generator == nil {
		return errors.New("dashboard store is missing its processing backend")
	}
	return nil
}

// SelectRegion starts a processing run for region, superseding any run in
// flight. It blocks until the run finishes and returns ErrSuperseded if a
// newer selection replaced it.
func (s *Store) SelectRegion(ctx context.Context, region domain.Region) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	runID := uuid.NewString()
	r := region

	s.mu.Lock()
	if s.cancelRun != nil {
		s.cancelRun()
	}
	s.token++
	token := s.token
	s.cancelRun = cancel
	s.state.Region = &r
	s.state.Processing = true
	s.state.Prediction = nil
	s.state.Simulation = nil
	s.state.Steps = nil
	s.state.ActiveView = domain.ViewDashboard
	s.state.RunID = runID
	s.commitLocked()

	s.metrics.SelectionsStarted.Inc()
	s.logger.Info("region selected", "region", region.Name, "run_id", runID)
	start := s.clock.Now()

	err := s.runner.Run(runCtx, region, func(steps []domain.ProcessingStep) {
		s.applyIfCurrent(token, func(st *State) { st.Steps = steps })
	})
	if err != nil {
		if !s.isCurrent(token) {
			return s.superseded(region, runID)
		}
		s.applyIfCurrent(token, func(st *State) { st.Processing = false })
		s.metrics.SelectionErrors.Inc()
		s.logger.Error("processing failed", "region", region.Name, "run_id", runID, "error", err)
		return fmt.Errorf("process region %q: %w", region.Name, err)
	}

	prediction := s.generator.GeneratePrediction(region)
	simulation := s.generator.GenerateSimulation(region)

	applied := s.applyIfCurrent(token, func(st *State) {
		st.Prediction = prediction
		st.Simulation = simulation
		st.Processing = false
	})
	if !applied {
		return s.superseded(region, runID)
	}

	s.mu.Lock()
	if s.token == token {
		s.cancelRun = nil
	}
	s.mu.Unlock()

	s.metrics.SelectionsCompleted.Inc()
	s.metrics.SelectionDuration.Observe(s.clock.Since(start).Seconds())
	s.logger.Info("analysis completed", "region", region.Name, "run_id", runID,
		"zones", len(prediction.RiskZones), "confidence", prediction.Confidence)

	s.publishResult(ctx, domain.AnalysisResult{
		RunID:       runID,
		Region:      region,
		Prediction:  prediction,
		Simulation:  simulation,
		CompletedAt: s.clock.Now().UTC(),
	})
	return nil
}

func (s *Store) superseded(region domain.Region, runID string) error {
	s.metrics.SelectionsSuperseded.Inc()
	s.logger.Debug("run superseded", "region", region.Name, "run_id", runID)
	return ErrSuperseded
}

// SetView switches the active screen. Values outside the enumeration fall
// back to the dashboard.
func (s *Store) SetView(v domain.View) {
	if !v.Valid() {
		v = domain.ViewDashboard
	}
	s.apply(func(st *State) { st.ActiveView = v })
}

// SetDarkMode sets the theme flag.
func (s *Store) SetDarkMode(dark bool) {
	s.apply(func(st *State) { st.DarkMode = dark })
}

// SetEnvironment replaces the environmental parameters after validation.
func (s *Store) SetEnvironment(p domain.EnvironmentalParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.apply(func(st *State) { st.Environment = p })
	return nil
}

// SetMapLayer selects the map overlay.
func (s *Store) SetMapLayer(layer domain.MapLayer) error {
	l, err := domain.ParseMapLayer(string(layer))
	if err != nil {
		return err
	}
	s.apply(func(st *State) { st.MapLayer = l })
	return nil
}

// SetTimeStep moves playback to one of the simulation time-steps.
func (s *Store) SetTimeStep(timeStep int) error {
	if !domain.IsSimulationTimeStep(timeStep) {
		return fmt.Errorf("%w: time step %d is not one of %v", domain.ErrInvalidParams, timeStep, domain.SimulationTimeSteps)
	}
	s.apply(func(st *State) { st.Playback.TimeStep = timeStep })
	return nil
}

// SetPlaying starts or pauses playback.
func (s *Store) SetPlaying(playing bool) {
	s.apply(func(st *State) { st.Playback.Playing = playing })
}

// SetSpeed sets the playback speed multiplier.
func (s *Store) SetSpeed(speed float64) error {
	if !(speed > 0) {
		return fmt.Errorf("%w: speed must be > 0, got %g", domain.ErrInvalidParams, speed)
	}
	s.apply(func(st *State) { st.Playback.Speed = speed })
	return nil
}

func (s *Store) isCurrent(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token == token
}

func (s *Store) apply(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	s.commitLocked()
}

// applyIfCurrent mutates state only while token belongs to the latest run.
func (s *Store) applyIfCurrent(token uint64, fn func(*State)) bool {
	s.mu.Lock()
	if s.token != token {
		s.mu.Unlock()
		return false
	}
	fn(&s.state)
	s.commitLocked()
	return true
}

// commitLocked bumps the version and notifies listeners. It must be called
// with mu held and releases it. notifyMu is taken before mu is released so
// listeners observe versions in order.
func (s *Store) commitLocked() {
	s.state.Version++
	if s.state.Processing {
		s.metrics.Processing.Set(1)
	} else {
		s.metrics.Processing.Set(0)
	}
	snap := s.state.clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
