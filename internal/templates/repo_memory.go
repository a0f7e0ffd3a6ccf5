package templates

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo, pre-seeded with the
// built-in templates.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []Template
}

// NewMemoryRepo constructs a MemoryRepo seeded with Defaults.
func NewMemoryRepo() *MemoryRepo {
	seeded := Defaults()
	for i := range seeded {
		seeded[i].ID = uuid.NewString()
		seeded[i].CreatedAt = time.Now().UTC()
	}
	return &MemoryRepo{data: seeded}
}

// ListActive returns all active templates.
func (r *MemoryRepo) ListActive(ctx context.Context) ([]Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.data))
	for _, t := range r.data {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

// GetBySlug returns the active template with the given slug.
func (r *MemoryRepo) GetBySlug(ctx context.Context, slug string) (Template, error) {
	if err := ctx.Err(); err != nil {
		return Template{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.data {
		if t.Slug == slug && t.Active {
			return t, nil
		}
	}
	return Template{}, ErrNotFound
}
