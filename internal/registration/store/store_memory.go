package store

import (
	"context"
	"sync"
	"time"

	"regportal/internal/registration"
)

// MemoryStore keeps registrants in memory. It backs tests and keeps the
// wiring honest; it intentionally favors clarity over performance.
type MemoryStore struct {
	mu      sync.RWMutex
	records []registration.Registrant
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// WithClock replaces the timestamp source, for tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Init(_ context.Context) error {
	return nil
}

func (s *MemoryStore) Append(_ context.Context, candidate registration.Registrant) (registration.Registrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate.NationalID = registration.NormalizeNationalID(candidate.NationalID)
	for _, existing := range s.records {
		if registration.NormalizeNationalID(existing.NationalID) == candidate.NationalID {
			return registration.Registrant{}, ErrDuplicateID
		}
	}

	candidate.RegisteredAt = s.now().Truncate(time.Second)
	s.records = append(s.records, candidate)
	return candidate, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]registration.Registrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]registration.Registrant{}, s.records...), nil
}
