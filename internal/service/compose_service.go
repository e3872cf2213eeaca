package service

import (
	"context"
	"log/slog"

	"trendsmith/internal/cache"
	"trendsmith/internal/models"
	"trendsmith/internal/observability"
	"trendsmith/internal/repository"
)

const (
	// MaxComposeCount caps the drafts one compose request produces.
	MaxComposeCount = 5
	// freshContextSize is how many recent scraped posts ground each draft.
	freshContextSize = 10
)

type ComposeService struct {
	trends   repository.TrendRepository
	scraped  repository.ScrapedPostRepository
	cards    repository.StyleCardRepository
	posts    repository.PostRepository
	composer PostComposer
	cache    *cache.Cache
}

type ComposeInput struct {
	TrendID string
	Count   int
}

func NewComposeService(
	trends repository.TrendRepository,
	scraped repository.ScrapedPostRepository,
	cards repository.StyleCardRepository,
	posts repository.PostRepository,
	composer PostComposer,
	c *cache.Cache,
) *ComposeService {
	return &ComposeService{
		trends:   trends,
		scraped:  scraped,
		cards:    cards,
		posts:    posts,
		composer: composer,
		cache:    c,
	}
}

// Compose writes up to MaxComposeCount drafts, one at a time, in the style of
// the trend's locked card. Drafts are stored as they are written. When a later
// composition fails the stored drafts are returned together with the error.
func (s *ComposeService) Compose(ctx context.Context, in ComposeInput) ([]models.Post, error) {
	if in.TrendID == "" {
		return nil, models.NewValidationError("trendId is required")
	}
	if in.Count < 1 {
		return nil, models.NewValidationError("count must be at least 1")
	}
	count := min(in.Count, MaxComposeCount)

	trend, err := s.trends.GetByID(ctx, in.TrendID)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.GetByTrend(ctx, trend.ID)
	if err != nil {
		return nil, err
	}
	if card == nil || !card.Locked {
		return nil, models.NewPreconditionError("style card not locked")
	}

	recent, err := s.scraped.MostRecent(ctx, trend.ID, freshContextSize)
	if err != nil {
		return nil, err
	}
	fresh := make([]string, len(recent))
	for i, p := range recent {
		fresh[i] = p.Content
	}

	style := card.Profile()
	drafts := make([]models.Post, 0, count)
	var composeErr error

	for i := 0; i < count; i++ {
		text, err := s.composer.ComposePost(ctx, trend.Name, style, fresh)
		if err != nil {
			composeErr = models.NewUpstreamError(observability.ServiceAnthropic, err)
			break
		}

		post := models.Post{TrendID: trend.ID, Content: text, Status: models.PostStatusDraft}
		if err := s.posts.Create(ctx, &post); err != nil {
			composeErr = err
			break
		}
		drafts = append(drafts, post)
		observability.DraftsComposed.Inc()
	}

	if len(drafts) > 0 {
		advanced, err := s.trends.AdvanceStatus(ctx, trend.ID, models.TrendStatusActive)
		if err != nil && composeErr == nil {
			composeErr = err
		}
		recordAdvance(ctx, trend.ID, models.TrendStatusActive, advanced)
		s.cache.InvalidateTrend(ctx, trend.ID)
	}

	if composeErr != nil {
		observability.Log().WarnContext(ctx, "composition stopped early",
			slog.String("trend_id", trend.ID),
			slog.Int("requested", count),
			slog.Int("composed", len(drafts)),
			slog.String("error", composeErr.Error()),
		)
		return drafts, composeErr
	}

	observability.Log().InfoContext(ctx, "drafts composed",
		slog.String("trend_id", trend.ID),
		slog.Int("composed", len(drafts)),
	)
	return drafts, nil
}
