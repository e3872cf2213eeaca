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

// analysisSampleSize is how many top posts feed one style analysis.
const analysisSampleSize = 50

type StyleService struct {
	trends   repository.TrendRepository
	scraped  repository.ScrapedPostRepository
	cards    repository.StyleCardRepository
	analyzer StyleAnalyzer
	cache    *cache.Cache
}

// UpdateStyleCardInput carries optional edits; nil fields are left untouched.
type UpdateStyleCardInput struct {
	Tone     *string   `json:"tone"`
	Format   *string   `json:"format"`
	MinWords *int      `json:"minWords"`
	MaxWords *int      `json:"maxWords"`
	Hooks    *[]string `json:"hooks"`
	Avoid    *[]string `json:"avoid"`
	Examples *[]string `json:"examples"`
	Locked   *bool     `json:"locked"`
}

func (in UpdateStyleCardInput) editsContent() bool {
	return in.Tone != nil || in.Format != nil || in.MinWords != nil || in.MaxWords != nil ||
		in.Hooks != nil || in.Avoid != nil || in.Examples != nil
}

func NewStyleService(
	trends repository.TrendRepository,
	scraped repository.ScrapedPostRepository,
	cards repository.StyleCardRepository,
	analyzer StyleAnalyzer,
	c *cache.Cache,
) *StyleService {
	return &StyleService{
		trends:   trends,
		scraped:  scraped,
		cards:    cards,
		analyzer: analyzer,
		cache:    c,
	}
}

// AnalyzeStyle derives a new unlocked style card for a trend from its top
// scraped posts, replacing any unlocked card it had.
func (s *StyleService) AnalyzeStyle(ctx context.Context, trendID string) (*models.StyleCard, error) {
	if trendID == "" {
		return nil, models.NewValidationError("trendId is required")
	}

	trend, err := s.trends.GetByID(ctx, trendID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cards.GetByTrend(ctx, trend.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Locked {
		return nil, models.NewConflictError("card is locked")
	}

	profile, err := s.analyze(ctx, trend)
	if err != nil {
		return nil, err
	}

	card := &models.StyleCard{TrendID: trend.ID}
	card.ApplyProfile(profile)
	if err := s.cards.ReplaceUnlocked(ctx, card); err != nil {
		return nil, err
	}
	s.cache.InvalidateTrend(ctx, trend.ID)

	observability.Log().InfoContext(ctx, "style card created",
		slog.String("trend_id", trend.ID),
		slog.String("style_card_id", card.ID),
	)
	return card, nil
}

// RegenerateStyle re-runs analysis for an unlocked card and overwrites it in place.
func (s *StyleService) RegenerateStyle(ctx context.Context, cardID string) (*models.StyleCard, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.Locked {
		return nil, models.NewConflictError("card is locked")
	}

	trend, err := s.trends.GetByID(ctx, card.TrendID)
	if err != nil {
		return nil, err
	}

	profile, err := s.analyze(ctx, trend)
	if err != nil {
		return nil, err
	}

	card.ApplyProfile(profile)
	if err := s.cards.Save(ctx, card); err != nil {
		return nil, err
	}
	s.cache.InvalidateTrend(ctx, trend.ID)

	observability.Log().InfoContext(ctx, "style card regenerated",
		slog.String("trend_id", trend.ID),
		slog.String("style_card_id", card.ID),
	)
	return card, nil
}

func (s *StyleService) analyze(ctx context.Context, trend *models.Trend) (models.StyleProfile, error) {
	top, err := s.scraped.ListByTrend(ctx, trend.ID, analysisSampleSize, 0)
	if err != nil {
		return models.StyleProfile{}, err
	}
	if len(top) == 0 {
		return models.StyleProfile{}, models.NewPreconditionError("no scraped posts")
	}

	samples := make([]models.StyleSample, len(top))
	for i, p := range top {
		samples[i] = models.StyleSample{Content: p.Content, Likes: p.Likes, Reposts: p.Reposts}
	}

	profile, err := s.analyzer.AnalyzeStyle(ctx, trend.Name, samples, DefaultHoursBack)
	if err != nil {
		observability.Log().WarnContext(ctx, "style analysis failed",
			slog.String("trend_id", trend.ID),
			slog.String("error", err.Error()),
		)
		return models.StyleProfile{}, models.NewUpstreamError(observability.ServiceAnthropic, err)
	}
	return profile, nil
}

// UpdateStyleCard applies operator edits. A locked card only accepts edits in
// the same request that unlocks it. Locking a card moves its trend to styled;
// unlocking leaves the trend status as it is.
func (s *StyleService) UpdateStyleCard(ctx context.Context, cardID string, in UpdateStyleCardInput) (*models.StyleCard, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	wasLocked := card.Locked
	unlocking := in.Locked != nil && !*in.Locked
	if wasLocked && !unlocking && in.editsContent() {
		return nil, models.NewConflictError("card is locked")
	}

	if in.Tone != nil {
		card.Tone = strings.TrimSpace(*in.Tone)
	}
	if in.Format != nil {
		card.Format = strings.TrimSpace(*in.Format)
	}
	if in.MinWords != nil {
		card.MinWords = *in.MinWords
	}
	if in.MaxWords != nil {
		card.MaxWords = *in.MaxWords
	}
	if in.Hooks != nil {
		card.Hooks = *in.Hooks
	}
	if in.Avoid != nil {
		card.Avoid = *in.Avoid
	}
	if in.Examples != nil {
		card.Examples = *in.Examples
	}
	if in.Locked != nil {
		card.Locked = *in.Locked
	}

	if card.MinWords < 0 || card.MaxWords < 0 {
		return nil, models.NewValidationError("minWords and maxWords must not be negative")
	}
	if card.MinWords > card.MaxWords {
		return nil, models.NewValidationError("minWords must not exceed maxWords")
	}

	if card.Locked && !wasLocked {
		advanced, err := s.cards.SaveAndAdvance(ctx, card, models.TrendStatusStyled)
		if err != nil {
			return nil, err
		}
		recordAdvance(ctx, card.TrendID, models.TrendStatusStyled, advanced)
	} else if err := s.cards.Save(ctx, card); err != nil {
		return nil, err
	}
	s.cache.InvalidateTrend(ctx, card.TrendID)

	observability.Log().InfoContext(ctx, "style card updated",
		slog.String("style_card_id", card.ID),
		slog.Bool("locked", card.Locked),
	)
	return card, nil
}
