package templates

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRepoListActive(t *testing.T) {
	repo := NewMemoryRepo()

	got, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 seeded templates, got %d", len(got))
	}
	for _, tmpl := range got {
		if tmpl.ID == "" {
			t.Errorf("template %s has no id", tmpl.Slug)
		}
		if !tmpl.Active {
			t.Errorf("template %s should be active", tmpl.Slug)
		}
	}
}

func TestMemoryRepoGetBySlug(t *testing.T) {
	repo := NewMemoryRepo()

	tmpl, err := repo.GetBySlug(context.Background(), "newspaper")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if tmpl.Name != "Newspaper" {
		t.Fatalf("expected Newspaper, got %q", tmpl.Name)
	}

	if _, err := repo.GetBySlug(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
