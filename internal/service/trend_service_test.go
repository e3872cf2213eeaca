package service

import (
	"context"
	"testing"

	"trendsmith/internal/cache"
	"trendsmith/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendService_CreateTrend_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := NewTrendService(f.trends, f.cards, f.cache)

	tests := []struct {
		name  string
		input CreateTrendInput
	}{
		{"blank name", CreateTrendInput{Name: "   ", Keywords: "ai"}},
		{"blank keywords", CreateTrendInput{Name: "AI", Keywords: "\t"}},
		{"both missing", CreateTrendInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTrend(context.Background(), tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestTrendService_CreateTrend_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := NewTrendService(f.trends, f.cards, f.cache)

	blank := "  "
	trend, err := svc.CreateTrend(context.Background(), CreateTrendInput{Name: " AI agents ", Keywords: "ai agents", Description: &blank})
	require.NoError(t, err)
	assert.NotEmpty(t, trend.ID)
	assert.Equal(t, "AI agents", trend.Name)
	assert.Equal(t, models.TrendStatusNew, trend.Status)
	assert.Nil(t, trend.Description)
}

func TestTrendService_ListAndGet(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := NewTrendService(f.trends, f.cards, f.cache)
	ctx := context.Background()

	trend := f.trend(t, models.TrendStatusNew)
	f.scrapedPosts(t, trend.ID, 3)
	card := f.card(t, trend.ID, false)
	f.post(t, trend.ID, models.PostStatusDraft)
	other := f.trend(t, models.TrendStatusNew)

	list, err := svc.ListTrends(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[string]models.TrendDetail{}
	for _, d := range list {
		byID[d.ID] = d
	}
	assert.Equal(t, models.TrendCounts{ScrapedPosts: 3, Posts: 1}, byID[trend.ID].Count)
	require.NotNil(t, byID[trend.ID].StyleCard)
	assert.Equal(t, card.ID, byID[trend.ID].StyleCard.ID)
	assert.Nil(t, byID[other.ID].StyleCard)

	detail, err := svc.GetTrend(ctx, trend.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TrendStatusScraped, detail.Status)
	assert.Equal(t, int64(3), detail.Count.ScrapedPosts)

	_, err = svc.GetTrend(ctx, "missing")
	assertNotFoundError(t, err)
}

func TestTrendService_DeleteTrend(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := NewTrendService(f.trends, f.cards, f.cache)
	ctx := context.Background()

	trend := f.trend(t, models.TrendStatusNew)
	f.scrapedPosts(t, trend.ID, 2)
	f.card(t, trend.ID, true)
	f.post(t, trend.ID, models.PostStatusApproved)

	require.NoError(t, svc.DeleteTrend(ctx, trend.ID))

	_, err := svc.GetTrend(ctx, trend.ID)
	assertNotFoundError(t, err)

	counts, err := f.trends.Counts(ctx, trend.ID)
	require.NoError(t, err)
	assert.Zero(t, counts.ScrapedPosts)
	assert.Zero(t, counts.Posts)

	assertNotFoundError(t, svc.DeleteTrend(ctx, trend.ID))
}

func TestTrendService_GetTrend_CacheInvalidatedByMutations(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := newFixture(t)
	f.cache = cache.New(rdb)
	trends := NewTrendService(f.trends, f.cards, f.cache)
	styles := NewStyleService(f.trends, f.scraped, f.cards, noopAnalyzer(), f.cache)
	ctx := context.Background()

	trend := f.trend(t, models.TrendStatusNew)
	f.scrapedPosts(t, trend.ID, 2)

	first, err := trends.GetTrend(ctx, trend.ID)
	require.NoError(t, err)
	assert.Nil(t, first.StyleCard)
	assert.True(t, mr.Exists(cache.TrendKey(trend.ID)))

	_, err = styles.AnalyzeStyle(ctx, trend.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.TrendKey(trend.ID)), "analysis must drop the cached detail")

	second, err := trends.GetTrend(ctx, trend.ID)
	require.NoError(t, err)
	require.NotNil(t, second.StyleCard)
	assert.Equal(t, "confident", second.StyleCard.Tone)

	require.NoError(t, trends.DeleteTrend(ctx, trend.ID))
	assert.False(t, mr.Exists(cache.TrendKey(trend.ID)))
}
