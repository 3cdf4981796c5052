package analytics

import (
	"context"

	"github.com/nulzo/prompt-router/internal/store"
	"github.com/nulzo/prompt-router/internal/store/model"
)

const (
	defaultRecent = 50
	maxRecent     = 500
)

type Service interface {
	RecentDecisions(ctx context.Context, limit int) ([]model.RouteLog, error)
}

type service struct {
	repo store.Repository
}

func NewService(repo store.Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) RecentDecisions(ctx context.Context, limit int) ([]model.RouteLog, error) {
	if limit <= 0 {
		limit = defaultRecent
	}
	if limit > maxRecent {
		limit = maxRecent
	}
	return s.repo.RouteLogs().Recent(ctx, limit)
}
