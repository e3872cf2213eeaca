package service

import (
	"context"
	"errors"
	"testing"

	"trendsmith/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestStyleService_AnalyzeStyle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	trend := f.trend(t, models.TrendStatusNew)
	f.scrapedPosts(t, trend.ID, 60)

	var gotSamples []models.StyleSample
	var gotTopic string
	analyzer := &analyzerStub{analyzeFn: func(_ context.Context, topic string, samples []models.StyleSample, hoursBack int) (models.StyleProfile, error) {
		gotTopic = topic
		gotSamples = samples
		assert.Equal(t, DefaultHoursBack, hoursBack)
		return testProfile("wry"), nil
	}}
	svc := NewStyleService(f.trends, f.scraped, f.cards, analyzer, f.cache)

	card, err := svc.AnalyzeStyle(context.Background(), trend.ID)
	require.NoError(t, err)

	assert.Equal(t, "AI agents", gotTopic)
	require.Len(t, gotSamples, analysisSampleSize)
	assert.Equal(t, "scraped 59", gotSamples[0].Content, "samples are the top posts by engagement")
	assert.Equal(t, "wry", card.Tone)
	assert.False(t, card.Locked)
	assert.Equal(t, trend.ID, card.TrendID)
	assert.Equal(t, models.TrendStatusScraped, f.trendStatus(t, trend.ID), "analysis does not change trend status")

	again, err := svc.AnalyzeStyle(context.Background(), trend.ID)
	require.NoError(t, err)
	assert.NotEqual(t, card.ID, again.ID, "the unlocked card is replaced")

	stored, err := f.cards.GetByTrend(context.Background(), trend.ID)
	require.NoError(t, err)
	assert.Equal(t, again.ID, stored.ID)
}

func TestStyleService_AnalyzeStyle_Preconditions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unknown trend", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		svc := NewStyleService(f.trends, f.scraped, f.cards, noopAnalyzer(), f.cache)
		_, err := svc.AnalyzeStyle(ctx, "missing")
		assertNotFoundError(t, err)
	})

	t.Run("no scraped posts", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		trend := f.trend(t, models.TrendStatusNew)
		analyzer := noopAnalyzer()
		svc := NewStyleService(f.trends, f.scraped, f.cards, analyzer, f.cache)
		_, err := svc.AnalyzeStyle(ctx, trend.ID)
		assertPreconditionError(t, err)
		assert.Zero(t, analyzer.calls)
	})

	t.Run("locked card", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		trend := f.trend(t, models.TrendStatusNew)
		f.scrapedPosts(t, trend.ID, 2)
		f.card(t, trend.ID, true)
		analyzer := noopAnalyzer()
		svc := NewStyleService(f.trends, f.scraped, f.cards, analyzer, f.cache)
		_, err := svc.AnalyzeStyle(ctx, trend.ID)
		assertAppError(t, err, models.CodeConflict)
		assert.Zero(t, analyzer.calls)
	})

	t.Run("analysis failure keeps existing card", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		trend := f.trend(t, models.TrendStatusNew)
		f.scrapedPosts(t, trend.ID, 2)
		existing := f.card(t, trend.ID, false)
		analyzer := &analyzerStub{analyzeFn: func(context.Context, string, []models.StyleSample, int) (models.StyleProfile, error) {
			return models.StyleProfile{}, errors.New("timeout")
		}}
		svc := NewStyleService(f.trends, f.scraped, f.cards, analyzer, f.cache)
		_, err := svc.AnalyzeStyle(ctx, trend.ID)
		assertAppError(t, err, models.CodeUpstream)

		stored, err := f.cards.GetByTrend(ctx, trend.ID)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, stored.ID)
	})
}

func TestStyleService_RegenerateStyle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	trend := f.trend(t, models.TrendStatusNew)
	f.scrapedPosts(t, trend.ID, 3)
	card := f.card(t, trend.ID, false)

	svc := NewStyleService(f.trends, f.scraped, f.cards, noopAnalyzer(), f.cache)

	regenerated, err := svc.RegenerateStyle(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, regenerated.ID)
	assert.Equal(t, "confident", regenerated.Tone)

	stored, err := f.cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "confident", stored.Tone)

	_, err = svc.RegenerateStyle(ctx, "missing")
	assertNotFoundError(t, err)

	_, err = svc.UpdateStyleCard(ctx, card.ID, UpdateStyleCardInput{Locked: ptr(true)})
	require.NoError(t, err)
	_, err = svc.RegenerateStyle(ctx, card.ID)
	assertAppError(t, err, models.CodeConflict)
}

func TestStyleService_RegenerateStyle_NoScrapedPosts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	trend := f.trend(t, models.TrendStatusNew)
	card := f.card(t, trend.ID, false)
	svc := NewStyleService(f.trends, f.scraped, f.cards, noopAnalyzer(), f.cache)

	_, err := svc.RegenerateStyle(ctx, card.ID)
	assertPreconditionError(t, err)
}

func TestStyleService_UpdateStyleCard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	trend := f.trend(t, models.TrendStatusNew)
	f.scrapedPosts(t, trend.ID, 1)
	card := f.card(t, trend.ID, false)
	svc := NewStyleService(f.trends, f.scraped, f.cards, noopAnalyzer(), f.cache)

	updated, err := svc.UpdateStyleCard(ctx, card.ID, UpdateStyleCardInput{
		Tone:  ptr("blunt"),
		Hooks: ptr([]string{"Nobody talks about"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "blunt", updated.Tone)
	assert.Equal(t, "hot take + evidence", updated.Format, "absent fields are untouched")
	assert.Equal(t, []string{"Nobody talks about"}, []string(updated.Hooks))
	assert.Equal(t, []string{"hashtags"}, []string(updated.Avoid))
	assert.Equal(t, models.TrendStatusScraped, f.trendStatus(t, trend.ID))

	_, err = svc.UpdateStyleCard(ctx, card.ID, UpdateStyleCardInput{Locked: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, models.TrendStatusStyled, f.trendStatus(t, trend.ID))

	_, err = svc.UpdateStyleCard(ctx, card.ID, UpdateStyleCardInput{Locked: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, models.TrendStatusStyled, f.trendStatus(t, trend.ID), "unlocking keeps the trend status")

	stored, err := f.cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.False(t, stored.Locked)
	assert.Equal(t, "blunt", stored.Tone)
}

func TestStyleService_UpdateStyleCard_LockedCardIsImmutable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	trend := f.trend(t, models.TrendStatusStyled)
	card := f.card(t, trend.ID, true)
	svc := NewStyleService(f.trends, f.scraped, f.cards, noopAnalyzer(), f.cache)

	tests := []struct {
		name  string
		input UpdateStyleCardInput
	}{
		{"tone and hooks", UpdateStyleCardInput{Tone: ptr("hijacked"), Hooks: ptr([]string{"x"})}},
		{"word range", UpdateStyleCardInput{MaxWords: ptr(99)}},
		{"examples while relocking", UpdateStyleCardInput{Examples: ptr([]string{"new"}), Locked: ptr(true)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateStyleCard(ctx, card.ID, tt.input)
			assertAppError(t, err, models.CodeConflict)
		})
	}

	stored, err := f.cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.True(t, stored.Locked)
	assert.Equal(t, card.Tone, stored.Tone)
	assert.Equal(t, []string(card.Hooks), []string(stored.Hooks))
	assert.Equal(t, card.MaxWords, stored.MaxWords)

	_, err = svc.UpdateStyleCard(ctx, card.ID, UpdateStyleCardInput{Locked: ptr(true)})
	require.NoError(t, err, "re-locking without edits is a no-op")

	unlocked, err := svc.UpdateStyleCard(ctx, card.ID, UpdateStyleCardInput{Tone: ptr("softer"), Locked: ptr(false)})
	require.NoError(t, err)
	assert.False(t, unlocked.Locked)
	assert.Equal(t, "softer", unlocked.Tone)
}

func TestStyleService_UpdateStyleCard_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	trend := f.trend(t, models.TrendStatusNew)
	card := f.card(t, trend.ID, false)
	svc := NewStyleService(f.trends, f.scraped, f.cards, noopAnalyzer(), f.cache)

	tests := []struct {
		name  string
		input UpdateStyleCardInput
	}{
		{"negative min", UpdateStyleCardInput{MinWords: ptr(-1)}},
		{"min above existing max", UpdateStyleCardInput{MinWords: ptr(41)}},
		{"inverted range", UpdateStyleCardInput{MinWords: ptr(20), MaxWords: ptr(5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateStyleCard(ctx, card.ID, tt.input)
			assertValidationError(t, err)
		})
	}

	stored, err := f.cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.MinWords)
	assert.Equal(t, 40, stored.MaxWords)

	_, err = svc.UpdateStyleCard(ctx, "missing", UpdateStyleCardInput{})
	assertNotFoundError(t, err)
}

func TestStyleService_LockingAnActiveTrendKeepsItActive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	trend := f.trend(t, models.TrendStatusActive)
	card := f.card(t, trend.ID, false)
	svc := NewStyleService(f.trends, f.scraped, f.cards, noopAnalyzer(), f.cache)

	_, err := svc.UpdateStyleCard(ctx, card.ID, UpdateStyleCardInput{Locked: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, models.TrendStatusActive, f.trendStatus(t, trend.ID))
}
