package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aliskhannn/conditionals-bot/internal/service"
)

type entry struct {
	session  *service.Session
	lastSeen time.Time
}

// QuizStorage provides in-memory storage for quiz sessions keyed by a host id.
type QuizStorage[K comparable] struct {
	mu       sync.RWMutex
	sessions map[K]*entry
	now      func() time.Time
}

var _ service.SessionStorage[int64] = (*QuizStorage[int64])(nil)

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage[K comparable]() *QuizStorage[K] {
	return NewQuizStorageWithClock[K](time.Now)
}

// NewQuizStorageWithClock creates a QuizStorage that reads time from now.
func NewQuizStorageWithClock[K comparable](now func() time.Time) *QuizStorage[K] {
	return &QuizStorage[K]{
		sessions: make(map[K]*entry),
		now:      now,
	}
}

// Store saves a session under key, replacing any previous one.
func (s *QuizStorage[K]) Store(key K, session *service.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = &entry{session: session, lastSeen: s.now()}
}

// Get retrieves the session stored under key and marks it as recently used.
func (s *QuizStorage[K]) Get(key K) (*service.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[key]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.session, true
}

// Delete removes the session stored under key.
func (s *QuizStorage[K]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}

// Len returns the number of stored sessions.
func (s *QuizStorage[K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than ttl and returns how many were removed.
func (s *QuizStorage[K]) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps sessions idle for longer than ttl on the cron schedule spec
// (e.g. "@every 1m") until ctx is done. onSweep, if set, receives the number of removed sessions.
func (s *QuizStorage[K]) RunJanitor(ctx context.Context, spec string, ttl time.Duration, onSweep func(removed int)) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(spec, func() {
		removed := s.Sweep(ttl)
		if onSweep != nil && removed > 0 {
			onSweep(removed)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule session sweep %q: %w", spec, err)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	return nil
}
