package visitors

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	visits []Visit
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Insert(ctx context.Context, visit Visit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visits = append(r.visits, visit)
	return nil
}

func (r *MemoryRepo) Stats(ctx context.Context, topPaths, recent int) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		TotalVisits: len(r.visits),
		TopPaths:    []PathCount{},
		Recent:      []Visit{},
	}

	ips := make(map[string]struct{})
	pathHits := make(map[string]int)
	for _, visit := range r.visits {
		ips[visit.IP] = struct{}{}
		pathHits[visit.Path]++
	}
	stats.UniqueVisitors = len(ips)

	for path, count := range pathHits {
		stats.TopPaths = append(stats.TopPaths, PathCount{Path: path, Count: count})
	}
	sort.Slice(stats.TopPaths, func(i, j int) bool {
		if stats.TopPaths[i].Count != stats.TopPaths[j].Count {
			return stats.TopPaths[i].Count > stats.TopPaths[j].Count
		}
		return stats.TopPaths[i].Path < stats.TopPaths[j].Path
	})
	if len(stats.TopPaths) > topPaths {
		stats.TopPaths = stats.TopPaths[:topPaths]
	}

	for i := len(r.visits) - 1; i >= 0 && len(stats.Recent) < recent; i-- {
		stats.Recent = append(stats.Recent, r.visits[i])
	}

	return stats, nil
}
