package repository

import (
	"context"
	"fmt"
	"log/slog"

	"trendsmith/internal/models"
	"trendsmith/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for composed post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Save(ctx context.Context, post *models.Post) error
	// ListByStatus returns posts with status, newest first, with Trend loaded.
	ListByStatus(ctx context.Context, status models.PostStatus) ([]models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	r.log.LogCreate(ctx, slog.String("post_id", post.ID), slog.String("trend_id", post.TrendID))
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "Post", id)
	}
	return &post, nil
}

func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return fmt.Errorf("save post %s: %w", post.ID, err)
	}
	r.log.LogUpdate(ctx, slog.String("post_id", post.ID), slog.String("status", string(post.Status)))
	return nil
}

func (r *postRepository) ListByStatus(ctx context.Context, status models.PostStatus) ([]models.Post, error) {
	defer observability.TrackQuery("list_by_status", "posts")()

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Trend").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts by status %s: %w", status, err)
	}
	return posts, nil
}
