package processing_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/observability"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/processing"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegion() domain.Region {
	return domain.Region{ID: "test-forest", Name: "Test Forest", Area: 1000,
		Bounds: domain.Bounds{Center: domain.Coordinate{Lat: 10, Lng: 20}}}
}

// recorder collects every published snapshot.
type recorder struct {
	mu        sync.Mutex
	snapshots [][]domain.ProcessingStep
}

func (r *recorder) publish(steps []domain.ProcessingStep) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, steps)
}

func (r *recorder) all() [][]domain.ProcessingStep {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]domain.ProcessingStep(nil), r.snapshots...)
}

func instantSimulator(opts ...processing.Option) *processing.Simulator {
	opts = append([]processing.Option{processing.WithDelays(0, 0, 0)}, opts...)
	return processing.NewSimulator(discardLogger(), opts...)
}

func TestSimulator_Run_PublishesEveryChange(t *testing.T) {
	rec := &recorder{}
	sim := instantSimulator()

	require.NoError(t, sim.Run(context.Background(), testRegion(), rec.publish))

	snaps := rec.all()
	// initial + per step: processing, five progress updates, completed.
	require.Len(t, snaps, 1+6*7)

	for _, s := range snaps[0] {
		assert.Equal(t, domain.StepPending, s.Status)
		assert.Zero(t, s.Progress)
	}

	assert.Equal(t, domain.StepProcessing, snaps[1][0].Status)
	assert.Equal(t, 0, snaps[1][0].Progress)
	progress := []int{snaps[2][0].Progress, snaps[3][0].Progress, snaps[4][0].Progress, snaps[5][0].Progress, snaps[6][0].Progress}
	assert.Equal(t, []int{0, 25, 50, 75, 100}, progress)
	assert.Equal(t, domain.StepCompleted, snaps[7][0].Status)
	assert.Equal(t, domain.StepPending, snaps[7][1].Status)

	final := snaps[len(snaps)-1]
	assert.True(t, domain.AllCompleted(final))
}

func TestSimulator_Run_StatusesAreMonotonic(t *testing.T) {
	rec := &recorder{}
	require.NoError(t, instantSimulator().Run(context.Background(), testRegion(), rec.publish))

	snaps := rec.all()
	for stepIdx := range domain.PipelineStages {
		prevRank, prevProgress := -1, -1
		for _, snap := range snaps {
			s := snap[stepIdx]
			assert.GreaterOrEqual(t, s.Status.Rank(), prevRank, "step %d regressed", s.ID)
			assert.GreaterOrEqual(t, s.Progress, prevProgress, "step %d progress regressed", s.ID)
			prevRank, prevProgress = s.Status.Rank(), s.Progress
		}
	}
}

func TestSimulator_Run_StepsAreSequential(t *testing.T) {
	rec := &recorder{}
	require.NoError(t, instantSimulator().Run(context.Background(), testRegion(), rec.publish))

	for _, snap := range rec.all() {
		active := 0
		for _, s := range snap {
			if s.Status == domain.StepProcessing {
				active++
			}
		}
		assert.LessOrEqual(t, active, 1, "more than one step processing at once")
	}
}

func TestSimulator_Run_PublishedSnapshotsAreCopies(t *testing.T) {
	rec := &recorder{}
	require.NoError(t, instantSimulator().Run(context.Background(), testRegion(), rec.publish))

	first := rec.all()[0]
	assert.Equal(t, domain.StepPending, first[0].Status, "later mutations leaked into an earlier snapshot")
}

func TestSimulator_Run_NilPublisher(t *testing.T) {
	assert.NoError(t, instantSimulator().Run(context.Background(), testRegion(), nil))
}

func TestSimulator_Run_FailureHook(t *testing.T) {
	errDEM := errors.New("dem tiles unavailable")
	sim := instantSimulator(processing.WithFailureHook(func(step domain.ProcessingStep) error {
		if step.ID == 3 {
			return errDEM
		}
		return nil
	}))

	rec := &recorder{}
	err := sim.Run(context.Background(), testRegion(), rec.publish)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDEM)
	assert.Contains(t, err.Error(), "Analyzing LULC data")

	last := rec.all()[len(rec.all())-1]
	assert.Equal(t, domain.StepCompleted, last[1].Status)
	assert.Equal(t, domain.StepPending, last[2].Status)
}

func TestSimulator_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recorder{}
	err := processing.NewSimulator(discardLogger()).Run(ctx, testRegion(), rec.publish)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, rec.all(), 1, "only the initial pending state is published")
}

func TestSimulator_Run_FakeClockTimings(t *testing.T) {
	fake := clockwork.NewFakeClock()
	metrics := observability.NewMetricsForTesting()
	sim := processing.NewSimulator(discardLogger(),
		processing.WithClock(fake),
		processing.WithSource(constantSource(0.5)),
		processing.WithMetrics(metrics),
	)

	start := fake.Now()
	var (
		mu           sync.Mutex
		processingAt []time.Duration
	)
	publish := func(steps []domain.ProcessingStep) {
		for _, s := range steps {
			if s.Status == domain.StepProcessing && s.Progress == 0 {
				mu.Lock()
				if len(processingAt) == 0 || processingAt[len(processingAt)-1] != fake.Since(start) {
					processingAt = append(processingAt, fake.Since(start))
				}
				mu.Unlock()
			}
		}
	}

	done := make(chan error, 1)
	go func() { done <- sim.Run(context.Background(), testRegion(), publish) }()

	require.NoError(t, drive(t, fake, done, func() time.Duration { return 10 * time.Millisecond }))

	// Draw 0.5 → 800ms + 0.5×1200ms = 1400ms before each step, 5×80ms within.
	total := fake.Since(start)
	assert.Equal(t, 6*(1400*time.Millisecond+5*80*time.Millisecond), total)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, processingAt)
	assert.Equal(t, 1400*time.Millisecond, processingAt[0])
}

// drive advances the fake clock in small increments until the run finishes.
func drive(t *testing.T, fake *clockwork.FakeClock, done <-chan error, step func() time.Duration) error {
	t.Helper()
	deadline := time.After(10 * time.Second)
	for {
		select {
		case err := <-done:
			return err
		case <-deadline:
			t.Fatal("simulator did not finish")
		default:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		err := fake.BlockUntilContext(ctx, 1)
		cancel()
		if err == nil {
			fake.Advance(step())
		}
	}
}

type constantSource float64

func (c constantSource) Float64() float64 { return float64(c) }
