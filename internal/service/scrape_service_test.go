package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"trendsmith/internal/models"
	"trendsmith/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidates(n int) []models.CandidatePost {
	out := make([]models.CandidatePost, n)
	for i := range out {
		out[i] = models.CandidatePost{
			URI:     fmt.Sprintf("at://did:plc:c/app.bsky.feed.post/%d", i),
			Content: fmt.Sprintf("candidate %d", i),
			Likes:   i,
			Reposts: i % 3,
			Replies: 1,
		}
	}
	return out
}

func TestScrapeService_Scrape_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := NewScrapeService(f.trends, f.scraped, &searcherStub{}, f.cache)
	ctx := context.Background()

	tests := []struct {
		name  string
		input ScrapeInput
	}{
		{"missing trend", ScrapeInput{HoursBack: 48, Limit: 50}},
		{"zero hours", ScrapeInput{TrendID: "t", HoursBack: 0, Limit: 50}},
		{"hours above cap", ScrapeInput{TrendID: "t", HoursBack: MaxHoursBack + 1, Limit: 50}},
		{"hours that overflow a duration", ScrapeInput{TrendID: "t", HoursBack: 3_000_000, Limit: 50}},
		{"negative limit", ScrapeInput{TrendID: "t", HoursBack: 48, Limit: -1}},
		{"limit above cap", ScrapeInput{TrendID: "t", HoursBack: 48, Limit: MaxScrapeLimit + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Scrape(ctx, tt.input)
			assertValidationError(t, err)
		})
	}

	_, err := svc.Scrape(ctx, ScrapeInput{TrendID: "missing", HoursBack: 48, Limit: 50})
	assertNotFoundError(t, err)
}

func TestScrapeService_Scrape_RanksTruncatesAndAdvances(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	trend := f.trend(t, models.TrendStatusNew)
	f.scrapedPosts(t, trend.ID, 4)

	now := time.Date(2026, 5, 3, 12, 0, 0, 0, time.UTC)
	var gotQuery search.Query
	searcher := &searcherStub{searchFn: func(_ context.Context, q search.Query) ([]models.CandidatePost, error) {
		gotQuery = q
		return candidates(12), nil
	}}
	svc := NewScrapeService(f.trends, f.scraped, searcher, f.cache)
	svc.now = func() time.Time { return now }

	result, err := svc.Scrape(context.Background(), ScrapeInput{TrendID: trend.ID, HoursBack: 24, Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, "ai agents", gotQuery.Text)
	assert.Equal(t, now.Add(-24*time.Hour), gotQuery.Since)
	assert.Equal(t, 5, gotQuery.Limit)

	assert.Equal(t, 5, result.ScrapedCount)
	require.Len(t, result.Posts, 5)
	require.NotNil(t, result.TopPost)
	assert.Equal(t, "candidate 11", result.TopPost.Content)
	for i := 1; i < len(result.Posts); i++ {
		assert.GreaterOrEqual(t, result.Posts[i-1].Engagement, result.Posts[i].Engagement)
	}
	assert.Equal(t, models.Engagement(11, 2, 1), result.TopPost.Engagement)

	stored, err := f.scraped.CountByTrend(context.Background(), trend.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored, "earlier scraped posts are replaced")
	assert.Equal(t, models.TrendStatusScraped, f.trendStatus(t, trend.ID))
}

func TestScrapeService_Scrape_EmptyResult(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	trend := f.trend(t, models.TrendStatusNew)
	searcher := &searcherStub{searchFn: func(context.Context, search.Query) ([]models.CandidatePost, error) {
		return nil, nil
	}}
	svc := NewScrapeService(f.trends, f.scraped, searcher, f.cache)

	result, err := svc.Scrape(context.Background(), ScrapeInput{TrendID: trend.ID, HoursBack: 48, Limit: 50})
	require.NoError(t, err)
	assert.Zero(t, result.ScrapedCount)
	assert.Nil(t, result.TopPost)
	assert.NotNil(t, result.Posts)
	assert.Equal(t, models.TrendStatusScraped, f.trendStatus(t, trend.ID))
}

func TestScrapeService_Scrape_DoesNotRegressStatus(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	trend := f.trend(t, models.TrendStatusActive)
	searcher := &searcherStub{searchFn: func(context.Context, search.Query) ([]models.CandidatePost, error) {
		return candidates(2), nil
	}}
	svc := NewScrapeService(f.trends, f.scraped, searcher, f.cache)

	_, err := svc.Scrape(context.Background(), ScrapeInput{TrendID: trend.ID, HoursBack: 48, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, models.TrendStatusActive, f.trendStatus(t, trend.ID))
}

func TestScrapeService_Scrape_SearchFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	trend := f.trend(t, models.TrendStatusNew)
	f.scrapedPosts(t, trend.ID, 3)
	require.Equal(t, models.TrendStatusScraped, f.trendStatus(t, trend.ID))

	boom := errors.New("bluesky search failed: 502")
	searcher := &searcherStub{searchFn: func(context.Context, search.Query) ([]models.CandidatePost, error) {
		return nil, boom
	}}
	svc := NewScrapeService(f.trends, f.scraped, searcher, f.cache)

	_, err := svc.Scrape(context.Background(), ScrapeInput{TrendID: trend.ID, HoursBack: 48, Limit: 50})
	assertAppError(t, err, models.CodeUpstream)
	assert.ErrorIs(t, err, boom)

	stored, err := f.scraped.CountByTrend(context.Background(), trend.ID)
	require.NoError(t, err)
	assert.Zero(t, stored, "old posts are deleted before the search runs")
}

func TestScrapeService_ListScraped(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	trend := f.trend(t, models.TrendStatusNew)
	f.scrapedPosts(t, trend.ID, 6)
	svc := NewScrapeService(f.trends, f.scraped, &searcherStub{}, f.cache)
	ctx := context.Background()

	page, err := svc.ListScraped(ctx, trend.ID, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "scraped 4", page[0].Content)
	assert.Equal(t, "scraped 3", page[1].Content)

	all, err := svc.ListScraped(ctx, trend.ID, 0, -5)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	none, err := svc.ListScraped(ctx, "missing", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
