package visitors

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTopPaths = 10
	defaultRecent   = 25
)

// Service records page hits and answers dashboard queries. It satisfies
// middleware.VisitRecorder.
type Service struct {
	Repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

func (s *Service) RecordVisit(ctx context.Context, ip, userAgent, path, sessionID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("visitors service not configured")
	}
	return s.Repo.Insert(ctx, Visit{
		ID:        uuid.NewString(),
		IP:        ip,
		UserAgent: userAgent,
		Path:      path,
		SessionID: sessionID,
		CreatedAt: s.now().UTC(),
	})
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	if s == nil || s.Repo == nil {
		return Stats{}, errors.New("visitors service not configured")
	}
	return s.Repo.Stats(ctx, defaultTopPaths, defaultRecent)
}
