package service

import (
	"context"
	"log/slog"
	"time"

	"trendsmith/internal/cache"
	"trendsmith/internal/models"
	"trendsmith/internal/observability"
	"trendsmith/internal/repository"
	"trendsmith/internal/search"
)

const (
	DefaultHoursBack    = 48
	MaxHoursBack        = 24 * 365
	DefaultScrapeLimit  = 50
	MaxScrapeLimit      = 1000
	DefaultScrapedLimit = 50
	MaxScrapedLimit     = 200
)

type ScrapeService struct {
	trends   repository.TrendRepository
	scraped  repository.ScrapedPostRepository
	searcher ContentSearcher
	cache    *cache.Cache
	now      func() time.Time
}

type ScrapeInput struct {
	TrendID   string
	HoursBack int
	Limit     int
}

func NewScrapeService(
	trends repository.TrendRepository,
	scraped repository.ScrapedPostRepository,
	searcher ContentSearcher,
	c *cache.Cache,
) *ScrapeService {
	return &ScrapeService{
		trends:   trends,
		scraped:  scraped,
		searcher: searcher,
		cache:    c,
		now:      time.Now,
	}
}

// Scrape replaces the trend's scraped posts with the top posts of the last
// HoursBack hours. Old posts are deleted before the search runs; the new posts
// and the status change are stored together.
func (s *ScrapeService) Scrape(ctx context.Context, in ScrapeInput) (*models.ScrapeResult, error) {
	if in.TrendID == "" {
		return nil, models.NewValidationError("trendId is required")
	}
	if in.HoursBack <= 0 || in.HoursBack > MaxHoursBack {
		return nil, models.NewValidationError("hoursBack must be between 1 and 8760")
	}
	if in.Limit <= 0 || in.Limit > MaxScrapeLimit {
		return nil, models.NewValidationError("limit must be between 1 and 1000")
	}

	trend, err := s.trends.GetByID(ctx, in.TrendID)
	if err != nil {
		return nil, err
	}

	removed, err := s.scraped.DeleteByTrend(ctx, trend.ID)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateTrend(ctx, trend.ID)

	candidates, err := s.searcher.Search(ctx, search.Query{
		Text:  trend.Keywords,
		Since: s.now().Add(-time.Duration(in.HoursBack) * time.Hour),
		Limit: in.Limit,
	})
	if err != nil {
		observability.Log().WarnContext(ctx, "scrape search failed",
			slog.String("trend_id", trend.ID),
			slog.String("error", err.Error()),
		)
		return nil, models.NewUpstreamError(observability.ServiceBluesky, err)
	}

	posts := make([]models.ScrapedPost, 0, len(candidates))
	for _, c := range candidates {
		posts = append(posts, c.ToScrapedPost(trend.ID))
	}
	models.SortByEngagement(posts)
	if len(posts) > in.Limit {
		posts = posts[:in.Limit]
	}

	advanced, err := s.scraped.SaveScrape(ctx, trend.ID, posts)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateTrend(ctx, trend.ID)
	observability.ScrapedPostsStored.Add(float64(len(posts)))
	recordAdvance(ctx, trend.ID, models.TrendStatusScraped, advanced)

	observability.Log().InfoContext(ctx, "trend scraped",
		slog.String("trend_id", trend.ID),
		slog.Int64("replaced", removed),
		slog.Int("stored", len(posts)),
	)

	result := &models.ScrapeResult{ScrapedCount: len(posts), Posts: posts}
	if len(posts) > 0 {
		result.TopPost = &posts[0]
	}
	return result, nil
}

// ListScraped pages through a trend's scraped posts, highest engagement first.
// An unknown trend has no posts.
func (s *ScrapeService) ListScraped(ctx context.Context, trendID string, limit, offset int) ([]models.ScrapedPost, error) {
	if limit <= 0 {
		limit = DefaultScrapedLimit
	}
	if limit > MaxScrapedLimit {
		limit = MaxScrapedLimit
	}
	if offset < 0 {
		offset = 0
	}

	return s.scraped.ListByTrend(ctx, trendID, limit, offset)
}
