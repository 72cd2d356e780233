package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/tradeskill/internal/dailytest"
	"github.com/vytor/tradeskill/internal/player"
)

type lessonEntry struct {
	learnerID string
	player    *player.Player
}

type testEntry struct {
	learnerID string
	runner    *dailytest.Runner
}

type slot[T any] struct {
	value    T
	lastUsed time.Time
}

// table is a uuid-keyed map of live sessions with last-use tracking.
type table[T any] struct {
	items map[string]*slot[T]
}

func newTable[T any]() table[T] {
	return table[T]{items: make(map[string]*slot[T])}
}

// SessionStore holds every live lesson and daily test session in memory.
// Sessions are independent; the store only guards its own maps.
type SessionStore struct {
	mu      sync.Mutex
	now     func() time.Time
	lessons table[lessonEntry]
	tests   table[testEntry]
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		now:     time.Now,
		lessons: newTable[lessonEntry](),
		tests:   newTable[testEntry](),
	}
}

func (s *SessionStore) putLesson(e lessonEntry) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.lessons.items[id] = &slot[lessonEntry]{value: e, lastUsed: s.now()}
	return id
}

func (s *SessionStore) lesson(id string) (lessonEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return touch(s.lessons, id, s.now())
}

func (s *SessionStore) putTest(e testEntry) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.tests.items[id] = &slot[testEntry]{value: e, lastUsed: s.now()}
	return id
}

func (s *SessionStore) test(id string) (testEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return touch(s.tests, id, s.now())
}

func (s *SessionStore) deleteLesson(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.lessons.items[id]
	delete(s.lessons.items, id)
	return ok
}

func (s *SessionStore) deleteTest(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tests.items[id]
	delete(s.tests.items, id)
	return ok
}

// Len returns the number of live lesson and test sessions.
func (s *SessionStore) Len() (lessons, tests int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lessons.items), len(s.tests.items)
}

// Sweep drops sessions unused for longer than idle and returns how many
// were dropped.
func (s *SessionStore) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-idle)
	return sweep(s.lessons, cutoff) + sweep(s.tests, cutoff)
}

func touch[T any](t table[T], id string, now time.Time) (T, bool) {
	sl, ok := t.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	sl.lastUsed = now
	return sl.value, true
}

func sweep[T any](t table[T], cutoff time.Time) int {
	n := 0
	for id, sl := range t.items {
		if sl.lastUsed.Before(cutoff) {
			delete(t.items, id)
			n++
		}
	}
	return n
}
