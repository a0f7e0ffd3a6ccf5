package session

import (
	"context"
	"sync"
	"time"

	"portfolio-backend/internal/portfolio"
)

// MemoryStore is an in-process Store used in dev and tests when no Redis
// is configured. Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

type memoryEntry struct {
	rec portfolio.Record
	exp time.Time
}

// NewMemoryStore constructs a MemoryStore with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryStore{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// SaveRecord stores the record under the session key.
func (s *MemoryStore) SaveRecord(ctx context.Context, sessionID string, rec portfolio.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = memoryEntry{rec: rec, exp: s.now().Add(s.ttl)}
	return nil
}

// GetRecord fetches the record for a session; the bool reports presence.
func (s *MemoryStore) GetRecord(ctx context.Context, sessionID string) (portfolio.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return portfolio.Record{}, false, err
	}
	s.mu.RLock()
	entry, ok := s.data[sessionID]
	s.mu.RUnlock()
	if !ok {
		return portfolio.Record{}, false, nil
	}
	if s.now().After(entry.exp) {
		s.mu.Lock()
		delete(s.data, sessionID)
		s.mu.Unlock()
		return portfolio.Record{}, false, nil
	}
	return entry.rec, true, nil
}

// DeleteRecord drops the record for a session.
func (s *MemoryStore) DeleteRecord(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.data, sessionID)
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
