package session

import (
	"context"

	"portfolio-backend/internal/portfolio"
)

// Store keeps the generated portfolio record between the upload step and
// the later preview/download steps, keyed by an opaque session identifier.
// Entries expire on their own; there is no explicit destroy in the wizard.
type Store interface {
	SaveRecord(ctx context.Context, sessionID string, rec portfolio.Record) error
	GetRecord(ctx context.Context, sessionID string) (portfolio.Record, bool, error)
	DeleteRecord(ctx context.Context, sessionID string) error
}
