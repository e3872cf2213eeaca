package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"trendsmith/internal/cache"
	"trendsmith/internal/models"
	"trendsmith/internal/repository"
	"trendsmith/internal/search"
	"trendsmith/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// searcherStub is a stub for ContentSearcher.
type searcherStub struct {
	searchFn func(context.Context, search.Query) ([]models.CandidatePost, error)
}

func (s *searcherStub) Search(ctx context.Context, q search.Query) ([]models.CandidatePost, error) {
	return s.searchFn(ctx, q)
}

// analyzerStub is a stub for StyleAnalyzer.
type analyzerStub struct {
	calls     int
	analyzeFn func(context.Context, string, []models.StyleSample, int) (models.StyleProfile, error)
}

func (s *analyzerStub) AnalyzeStyle(ctx context.Context, topic string, samples []models.StyleSample, hoursBack int) (models.StyleProfile, error) {
	s.calls++
	return s.analyzeFn(ctx, topic, samples, hoursBack)
}

// composerStub is a stub for PostComposer.
type composerStub struct {
	calls     int
	composeFn func(context.Context, string, models.StyleProfile, []string) (string, error)
}

func (s *composerStub) ComposePost(ctx context.Context, topic string, style models.StyleProfile, recent []string) (string, error) {
	s.calls++
	return s.composeFn(ctx, topic, style, recent)
}

// publisherStub is a stub for Publisher.
type publisherStub struct {
	calls     int
	publishFn func(context.Context, string) (models.PublishedTweet, error)
}

func (s *publisherStub) Publish(ctx context.Context, text string) (models.PublishedTweet, error) {
	s.calls++
	return s.publishFn(ctx, text)
}

func noopAnalyzer() *analyzerStub {
	return &analyzerStub{
		analyzeFn: func(_ context.Context, _ string, _ []models.StyleSample, _ int) (models.StyleProfile, error) {
			return testProfile("confident"), nil
		},
	}
}

func noopComposer() *composerStub {
	return &composerStub{}
}

func testProfile(tone string) models.StyleProfile {
	return models.StyleProfile{
		Tone:     tone,
		Format:   "hot take + evidence",
		MinWords: 10,
		MaxWords: 40,
		Hooks:    []string{"Hot take:"},
		Avoid:    []string{"hashtags"},
		Examples: []string{"one", "two", "three"},
	}
}

type fixture struct {
	db      *gorm.DB
	trends  repository.TrendRepository
	scraped repository.ScrapedPostRepository
	cards   repository.StyleCardRepository
	posts   repository.PostRepository
	cache   *cache.Cache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &fixture{
		db:      db,
		trends:  repository.NewTrendRepository(db),
		scraped: repository.NewScrapedPostRepository(db),
		cards:   repository.NewStyleCardRepository(db),
		posts:   repository.NewPostRepository(db),
		cache:   cache.New(nil),
	}
}

func (f *fixture) trend(t *testing.T, status models.TrendStatus) *models.Trend {
	t.Helper()
	trend := &models.Trend{Name: "AI agents", Keywords: "ai agents", Status: status}
	require.NoError(t, f.trends.Create(context.Background(), trend))
	return trend
}

func (f *fixture) scrapedPosts(t *testing.T, trendID string, n int) []models.ScrapedPost {
	t.Helper()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	posts := make([]models.ScrapedPost, n)
	for i := range posts {
		posts[i] = models.CandidatePost{
			URI:      fmt.Sprintf("at://did:plc:test/app.bsky.feed.post/%d", i),
			Content:  fmt.Sprintf("scraped %d", i),
			Likes:    i * 10,
			Reposts:  i,
			PostedAt: base.Add(time.Duration(i) * time.Minute),
		}.ToScrapedPost(trendID)
	}
	_, err := f.scraped.SaveScrape(context.Background(), trendID, posts)
	require.NoError(t, err)
	return posts
}

func (f *fixture) card(t *testing.T, trendID string, locked bool) *models.StyleCard {
	t.Helper()
	card := &models.StyleCard{TrendID: trendID, Locked: locked}
	card.ApplyProfile(testProfile("dry"))
	require.NoError(t, f.cards.ReplaceUnlocked(context.Background(), card))
	return card
}

func (f *fixture) post(t *testing.T, trendID string, status models.PostStatus) *models.Post {
	t.Helper()
	post := &models.Post{TrendID: trendID, Content: "draft text", Status: status}
	require.NoError(t, f.posts.Create(context.Background(), post))
	return post
}

func (f *fixture) trendStatus(t *testing.T, id string) models.TrendStatus {
	t.Helper()
	trend, err := f.trends.GetByID(context.Background(), id)
	require.NoError(t, err)
	return trend.Status
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeNotFound)
}

func assertPreconditionError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodePrecondition)
}
