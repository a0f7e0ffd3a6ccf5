package waitlist

import (
	"context"
	"strings"
	"sync"
)

type MemoryRepo struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{entries: make(map[string]Entry)}
}

func (r *MemoryRepo) Insert(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(entry.Email)
	if _, ok := r.entries[key]; ok {
		return ErrDuplicate
	}
	r.entries[key] = entry
	return nil
}
