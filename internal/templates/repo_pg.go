package templates

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo is a Postgres-backed implementation of Repo.
type PGRepo struct {
	DB *sql.DB
}

// ListActive returns all active templates, oldest first.
func (r *PGRepo) ListActive(ctx context.Context) ([]Template, error) {
	const query = `
SELECT id, name, slug, description, is_active, created_at
FROM portfolio_templates
WHERE is_active = TRUE
ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var t Template
		var description sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &description, &t.Active, &t.CreatedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			t.Description = description.String
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetBySlug returns the active template with the given slug.
func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (Template, error) {
	const query = `
SELECT id, name, slug, description, is_active, created_at
FROM portfolio_templates
WHERE slug = $1 AND is_active = TRUE
LIMIT 1`
	var t Template
	var description sql.NullString
	err := r.DB.QueryRowContext(ctx, query, slug).Scan(&t.ID, &t.Name, &t.Slug, &description, &t.Active, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Template{}, ErrNotFound
		}
		return Template{}, err
	}
	if description.Valid {
		t.Description = description.String
	}
	return t, nil
}
