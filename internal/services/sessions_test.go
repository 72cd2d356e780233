package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore_SweepDropsIdleSessions(t *testing.T) {
	clock := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s := NewSessionStore()
	s.now = func() time.Time { return clock }

	stale := s.putLesson(lessonEntry{learnerID: "ana"})
	kept := s.putLesson(lessonEntry{learnerID: "ana"})
	staleTest := s.putTest(testEntry{learnerID: "ana"})

	clock = clock.Add(20 * time.Minute)
	_, ok := s.lesson(kept)
	assert.True(t, ok)

	clock = clock.Add(20 * time.Minute)
	assert.Equal(t, 2, s.Sweep(30*time.Minute))

	_, ok = s.lesson(stale)
	assert.False(t, ok)
	_, ok = s.test(staleTest)
	assert.False(t, ok)
	_, ok = s.lesson(kept)
	assert.True(t, ok)

	lessons, tests := s.Len()
	assert.Equal(t, 1, lessons)
	assert.Equal(t, 0, tests)
}

func TestSessionStore_Delete(t *testing.T) {
	s := NewSessionStore()
	id := s.putTest(testEntry{learnerID: "ana"})

	assert.True(t, s.deleteTest(id))
	assert.False(t, s.deleteTest(id))
	assert.False(t, s.deleteLesson(id))
}
