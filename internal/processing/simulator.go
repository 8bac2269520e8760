// Package processing emulates the multi-stage analysis backend with visible,
// timer-driven progress.
package processing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/mockdata"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/observability"
	"github.com/jonboulle/clockwork"
)

const (
	DefaultStepDelayMin     = 800 * time.Millisecond
	DefaultStepDelayMax     = 2000 * time.Millisecond
	DefaultProgressInterval = 80 * time.Millisecond

	progressIncrement = 25
)

// Publisher receives a copy of the step list after every mutation.
type Publisher func(steps []domain.ProcessingStep)

// FailureHook is consulted before each step starts. A non-nil error aborts
// the run.
type FailureHook func(step domain.ProcessingStep) error

// Simulator drives the pipeline stages strictly one after another.
type Simulator struct {
	clock            clockwork.Clock
	src              mockdata.Source
	stepDelayMin     time.Duration
	stepDelayMax     time.Duration
	progressInterval time.Duration
	failureHook      FailureHook
	logger           *slog.Logger
	metrics          *observability.Metrics
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithClock sets the time source used for every pause.
func WithClock(c clockwork.Clock) Option {
	return func(s *Simulator) { s.clock = c }
}

// WithSource sets the random source for step delays.
func WithSource(src mockdata.Source) Option {
	return func(s *Simulator) { s.src = src }
}

// WithDelays overrides the step delay window [minDelay, maxDelay) and the
// pause between progress increments. Zero durations disable the pause.
func WithDelays(minDelay, maxDelay, progressInterval time.Duration) Option {
	return func(s *Simulator) {
		s.stepDelayMin = minDelay
		s.stepDelayMax = maxDelay
		s.progressInterval = progressInterval
	}
}

// WithFailureHook injects a failure point before each step.
func WithFailureHook(h FailureHook) Option {
	return func(s *Simulator) { s.failureHook = h }
}

// WithMetrics records step durations.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Simulator) { s.metrics = m }
}

// NewSimulator creates a Simulator with production timings.
func NewSimulator(logger *slog.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		clock:            clockwork.NewRealClock(),
		src:              mockdata.DefaultSource,
		stepDelayMin:     DefaultStepDelayMin,
		stepDelayMax:     DefaultStepDelayMax,
		progressInterval: DefaultProgressInterval,
		logger:           logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes every pipeline stage for the region, publishing each state
// change. It returns nil once the final step is completed, ctx.Err() if the
// context ends at a pause, or the failure hook's error.
func (s *Simulator) Run(ctx context.Context, region domain.Region, publish Publisher) error {
	steps := domain.NewProcessingSteps()
	emit := func() {
		if publish != nil {
			publish(domain.CopySteps(steps))
		}
	}
	emit()

	s.logger.Debug("processing started", "region", region.Name, "steps", len(steps))

	for i := range steps {
		if !s.sleep(ctx, s.stepDelay()) {
			return ctx.Err()
		}

		if s.failureHook != nil {
			if err := s.failureHook(steps[i]); err != nil {
				return fmt.Errorf("step %d %q: %w", steps[i].ID, steps[i].Name, err)
			}
		}

		start := s.clock.Now()
		steps[i].Status = domain.StepProcessing
		emit()

		for progress := 0; progress <= 100; progress += progressIncrement {
			if !s.sleep(ctx, s.progressInterval) {
				return ctx.Err()
			}
			steps[i].Progress = progress
			emit()
		}

		steps[i].Status = domain.StepCompleted
		emit()

		if s.metrics != nil {
			s.metrics.StepDuration.WithLabelValues(steps[i].Name).Observe(s.clock.Since(start).Seconds())
		}
		s.logger.Debug("processing step completed", "region", region.Name, "step", steps[i].Name)
	}

	return nil
}

// stepDelay draws a delay in [stepDelayMin, stepDelayMax).
func (s *Simulator) stepDelay() time.Duration {
	span := s.stepDelayMax - s.stepDelayMin
	if span <= 0 {
		return s.stepDelayMin
	}
	return s.stepDelayMin + time.Duration(s.src.Float64()*float64(span))
}

// sleep pauses for d on the simulator's clock. Returns false if ctx ended first.
func (s *Simulator) sleep(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if d <= 0 {
		return true
	}

	timer := s.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
