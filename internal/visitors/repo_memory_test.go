package visitors

import (
	"context"
	"testing"
	"time"
)

func seedMemoryRepo(t *testing.T) *MemoryRepo {
	t.Helper()
	repo := NewMemoryRepo()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	visits := []Visit{
		{ID: "1", IP: "10.0.0.1", Path: "/", CreatedAt: base},
		{ID: "2", IP: "10.0.0.1", Path: "/templates", CreatedAt: base.Add(time.Minute)},
		{ID: "3", IP: "10.0.0.2", Path: "/", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "4", IP: "10.0.0.3", Path: "/", CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, v := range visits {
		if err := repo.Insert(context.Background(), v); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return repo
}

func TestMemoryRepoStats(t *testing.T) {
	repo := seedMemoryRepo(t)

	stats, err := repo.Stats(context.Background(), 10, 2)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalVisits != 4 {
		t.Errorf("total visits = %d, want 4", stats.TotalVisits)
	}
	if stats.UniqueVisitors != 3 {
		t.Errorf("unique visitors = %d, want 3", stats.UniqueVisitors)
	}
	if len(stats.TopPaths) != 2 || stats.TopPaths[0].Path != "/" || stats.TopPaths[0].Count != 3 {
		t.Errorf("unexpected top paths: %+v", stats.TopPaths)
	}
	if len(stats.Recent) != 2 || stats.Recent[0].ID != "4" || stats.Recent[1].ID != "3" {
		t.Errorf("unexpected recent visits: %+v", stats.Recent)
	}
}

func TestMemoryRepoStatsTruncatesTopPaths(t *testing.T) {
	repo := seedMemoryRepo(t)

	stats, err := repo.Stats(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats.TopPaths) != 1 {
		t.Fatalf("top paths = %d, want 1", len(stats.TopPaths))
	}
	if stats.TopPaths[0].Path != "/" {
		t.Fatalf("top path = %q, want /", stats.TopPaths[0].Path)
	}
}
