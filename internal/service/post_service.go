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

const maxPostContentLen = 2000

type PostService struct {
	posts repository.PostRepository
	cache *cache.Cache
}

// UpdatePostInput carries optional edits; nil fields are left untouched.
type UpdatePostInput struct {
	Content *string            `json:"content"`
	Status  *models.PostStatus `json:"status"`
}

func NewPostService(posts repository.PostRepository, c *cache.Cache) *PostService {
	return &PostService{posts: posts, cache: c}
}

// UpdatePost edits a post's content or moves it between draft, approved and rejected.
func (s *PostService) UpdatePost(ctx context.Context, id string, in UpdatePostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && !in.Status.Editable() {
		return nil, models.NewValidationError("Invalid status. Must be one of: draft, approved, rejected")
	}
	if post.Status == models.PostStatusPublished {
		return nil, models.NewPreconditionError("published posts cannot be edited")
	}

	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return nil, models.NewValidationError("content must not be empty")
		}
		if len(content) > maxPostContentLen {
			return nil, models.NewValidationError("content too long (max 2000 characters)")
		}
		post.Content = content
	}
	if in.Status != nil {
		post.Status = *in.Status
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	s.cache.InvalidateTrend(ctx, post.TrendID)

	observability.Log().InfoContext(ctx, "post updated",
		slog.String("post_id", post.ID),
		slog.String("status", string(post.Status)),
	)
	return post, nil
}

// ListQueue returns posts with the given status, newest first. An empty status
// lists approved posts.
func (s *PostService) ListQueue(ctx context.Context, status string) ([]models.QueuedPost, error) {
	st := models.PostStatusApproved
	if status != "" {
		st = models.PostStatus(strings.ToLower(strings.TrimSpace(status)))
	}
	if !st.Valid() {
		return nil, models.NewValidationError("Invalid status. Must be one of: draft, approved, rejected, published")
	}

	posts, err := s.posts.ListByStatus(ctx, st)
	if err != nil {
		return nil, err
	}

	queue := make([]models.QueuedPost, len(posts))
	for i, p := range posts {
		ref := models.TrendRef{ID: p.TrendID}
		if p.Trend != nil {
			ref.Name = p.Trend.Name
		}
		queue[i] = models.QueuedPost{Post: p, Trend: ref}
	}
	return queue, nil
}
