package service

import (
	"context"
	"log/slog"
	"time"

	"trendsmith/internal/cache"
	"trendsmith/internal/models"
	"trendsmith/internal/observability"
	"trendsmith/internal/repository"
)

type PublishService struct {
	posts     repository.PostRepository
	publisher Publisher
	cache     *cache.Cache
	now       func() time.Time
}

func NewPublishService(posts repository.PostRepository, publisher Publisher, c *cache.Cache) *PublishService {
	return &PublishService{posts: posts, publisher: publisher, cache: c, now: time.Now}
}

// Publish posts an approved post and records the tweet. A failed publish
// leaves the post approved.
func (s *PublishService) Publish(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusApproved {
		return nil, models.NewPreconditionError("post must be approved before publishing")
	}

	tweet, err := s.publisher.Publish(ctx, post.Content)
	if err != nil {
		observability.Log().WarnContext(ctx, "publish failed",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()),
		)
		return nil, models.NewUpstreamError(observability.ServiceX, err)
	}

	publishedAt := s.now().UTC()
	post.Status = models.PostStatusPublished
	post.TweetID = &tweet.ID
	post.TweetURL = &tweet.URL
	post.PublishedAt = &publishedAt

	if err := s.posts.Save(ctx, post); err != nil {
		// The tweet is live but unrecorded; keep its id in the log for manual repair.
		observability.Log().ErrorContext(ctx, "published tweet could not be recorded",
			slog.String("post_id", post.ID),
			slog.String("tweet_id", tweet.ID),
			slog.String("error", err.Error()),
		)
		return nil, models.NewInternalError(err)
	}
	s.cache.InvalidateTrend(ctx, post.TrendID)
	observability.PostsPublished.Inc()

	observability.Log().InfoContext(ctx, "post published",
		slog.String("post_id", post.ID),
		slog.String("tweet_id", tweet.ID),
	)
	return post, nil
}
