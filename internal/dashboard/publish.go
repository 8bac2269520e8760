package dashboard

import (
	"context"
	"time"

	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
)

const maxPublishBackoff = 5 * time.Second

// publishResult hands a completed analysis to the publisher, retrying with
// exponential backoff. Failures are logged and never fail the selection.
func (s *Store) publishResult(ctx context.Context, result domain.AnalysisResult) {
	if s.publisher == nil {
		return
	}

	attempts := max(s.publishAttempts, 1)
	backoff := s.publishBackoff
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = s.publisher.PublishResult(ctx, result); err == nil {
			s.metrics.ResultsPublished.Inc()
			return
		}
		s.logger.Warn("publish result failed", "run_id", result.RunID, "attempt", attempt, "error", err)
		if attempt == attempts || !s.sleep(ctx, backoff) {
			break
		}
		backoff = nextBackoff(backoff, maxPublishBackoff)
	}

	s.metrics.PublishErrors.Inc()
	s.logger.Error("result dropped", "run_id", result.RunID, "region", result.Region.Name, "error", err)
}

func (s *Store) sleep(ctx context.Context, d time.Duration) bool {
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

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
