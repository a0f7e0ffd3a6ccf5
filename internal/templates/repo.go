package templates

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "template not found" }

// Repo defines persistence operations for portfolio templates.
type Repo interface {
	ListActive(ctx context.Context) ([]Template, error)
	GetBySlug(ctx context.Context, slug string) (Template, error)
}
