package service

import (
	"context"
	"log/slog"
	"strings"

	"trendsmith/internal/cache"
	"trendsmith/internal/models"
	"trendsmith/internal/observability"
	"trendsmith/internal/repository"
)

const (
	maxTrendNameLen = 200
	maxKeywordsLen  = 500
)

type TrendService struct {
	trends repository.TrendRepository
	cards  repository.StyleCardRepository
	cache  *cache.Cache
}

type CreateTrendInput struct {
	Name        string
	Keywords    string
	Description *string
}

func NewTrendService(
	trends repository.TrendRepository,
	cards repository.StyleCardRepository,
	c *cache.Cache,
) *TrendService {
	return &TrendService{trends: trends, cards: cards, cache: c}
}

func (s *TrendService) CreateTrend(ctx context.Context, in CreateTrendInput) (*models.Trend, error) {
	name := strings.TrimSpace(in.Name)
	keywords := strings.TrimSpace(in.Keywords)

	if name == "" {
		return nil, models.NewValidationError("name is required")
	}
	if keywords == "" {
		return nil, models.NewValidationError("keywords are required")
	}
	if len(name) > maxTrendNameLen {
		return nil, models.NewValidationError("name too long (max 200 characters)")
	}
	if len(keywords) > maxKeywordsLen {
		return nil, models.NewValidationError("keywords too long (max 500 characters)")
	}

	trend := &models.Trend{Name: name, Keywords: keywords}
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			trend.Description = &d
		}
	}

	if err := s.trends.Create(ctx, trend); err != nil {
		return nil, err
	}
	observability.Log().InfoContext(ctx, "trend created", slog.String("trend_id", trend.ID), slog.String("name", trend.Name))
	return trend, nil
}

// ListTrends returns every trend newest first with its card and counts.
func (s *TrendService) ListTrends(ctx context.Context) ([]models.TrendDetail, error) {
	trends, err := s.trends.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(trends))
	for i, t := range trends {
		ids[i] = t.ID
	}

	counts, err := s.trends.CountsForTrends(ctx, ids)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListForTrends(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.TrendDetail, len(trends))
	for i, t := range trends {
		out[i] = models.TrendDetail{Trend: t, StyleCard: cards[t.ID], Count: counts[t.ID]}
	}
	return out, nil
}

// GetTrend returns a trend with its card and counts, served from cache when possible.
func (s *TrendService) GetTrend(ctx context.Context, id string) (*models.TrendDetail, error) {
	return cache.Aside(ctx, s.cache, cache.TrendKey(id), cache.TrendTTL, func(ctx context.Context) (*models.TrendDetail, error) {
		return s.loadDetail(ctx, id)
	})
}

func (s *TrendService) loadDetail(ctx context.Context, id string) (*models.TrendDetail, error) {
	trend, err := s.trends.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	card, err := s.cards.GetByTrend(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.trends.Counts(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.TrendDetail{Trend: *trend, StyleCard: card, Count: counts}, nil
}

// DeleteTrend removes a trend with all its scraped posts, card and posts.
func (s *TrendService) DeleteTrend(ctx context.Context, id string) error {
	if err := s.trends.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateTrend(ctx, id)
	observability.Log().InfoContext(ctx, "trend deleted", slog.String("trend_id", id))
	return nil
}
