package tasks

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource yields uniformly distributed values in [0, 1).
type RandomSource interface {
	Float64() float64
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a goroutine-safe source. A zero seed seeds from the clock.
func NewRandomSource(seed int64) RandomSource {
	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return &lockedSource{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

// SequenceSource replays fixed draws in order, wrapping around. It is meant
// for tests and scripted demos.
type SequenceSource struct {
	mu    sync.Mutex
	draws []float64
	next  int
}

func NewSequenceSource(draws ...float64) *SequenceSource {
	if len(draws) == 0 {
		draws = []float64{0}
	}
	return &SequenceSource{draws: draws}
}

func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.draws[s.next%len(s.draws)]
	s.next++
	return v
}

// Calls returns how many draws have been consumed.
func (s *SequenceSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
