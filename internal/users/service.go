package users

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// UpsertFromAuth persists the user identity from OAuth to stabilize ownership
// of portfolio history and profile settings.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return errors.New("user id and email are required")
	}
	return s.Repo.Upsert(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// SetAPIKey stores a personal generation key on the profile.
func (s *Service) SetAPIKey(ctx context.Context, userID, key string) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("api key is required")
	}
	return s.Repo.SetAPIKey(ctx, userID, key)
}

func (s *Service) ClearAPIKey(ctx context.Context, userID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	return s.Repo.SetAPIKey(ctx, userID, "")
}

// MarkPortfolioGenerated flips the one-free-generation flag after a
// successful run on the shared key.
func (s *Service) MarkPortfolioGenerated(ctx context.Context, userID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	return s.Repo.MarkPortfolioGenerated(ctx, userID)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	if s == nil || s.Repo == nil {
		return Stats{}, errors.New("users service not configured")
	}
	return s.Repo.Stats(ctx)
}
