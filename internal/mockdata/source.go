package mockdata

import (
	"math/rand/v2"
	"sync"
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource is the process-wide, concurrency-safe random source.
var DefaultSource Source = globalSource{}

// lockedSource serializes access to a seeded generator, which is not safe for
// concurrent use on its own.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// NewSeededSource returns a reproducible source. A zero seed returns
// DefaultSource.
func NewSeededSource(seed uint64) Source {
	if seed == 0 {
		return DefaultSource
	}
	return &lockedSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
