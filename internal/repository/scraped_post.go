package repository

import (
	"context"
	"fmt"
	"log/slog"

	"trendsmith/internal/models"
	"trendsmith/internal/observability"

	"gorm.io/gorm"
)

// ScrapedPostRepository defines the interface for scraped post data operations
type ScrapedPostRepository interface {
	DeleteByTrend(ctx context.Context, trendID string) (int64, error)
	// SaveScrape stores posts and advances the trend to scraped in one transaction.
	SaveScrape(ctx context.Context, trendID string, posts []models.ScrapedPost) (bool, error)
	ListByTrend(ctx context.Context, trendID string, limit, offset int) ([]models.ScrapedPost, error)
	MostRecent(ctx context.Context, trendID string, n int) ([]models.ScrapedPost, error)
	CountByTrend(ctx context.Context, trendID string) (int64, error)
}

type scrapedPostRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewScrapedPostRepository creates a new scraped post repository
func NewScrapedPostRepository(db *gorm.DB) ScrapedPostRepository {
	return &scrapedPostRepository{db: db, log: observability.NewRepoLogger("scraped_posts")}
}

func (r *scrapedPostRepository) DeleteByTrend(ctx context.Context, trendID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("trend_id = ?", trendID).Delete(&models.ScrapedPost{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete scraped posts of trend %s: %w", trendID, res.Error)
	}
	r.log.LogDelete(ctx, slog.String("trend_id", trendID), slog.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}

func (r *scrapedPostRepository) SaveScrape(ctx context.Context, trendID string, posts []models.ScrapedPost) (bool, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "SaveScrape", "scraped_posts")
	defer span.End()

	var advanced bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(posts) > 0 {
			if err := tx.Omit("Trend").CreateInBatches(&posts, scrapeBatchSize).Error; err != nil {
				return fmt.Errorf("insert scraped posts: %w", err)
			}
		}
		var err error
		advanced, err = advanceTrendStatus(tx, trendID, models.TrendStatusScraped)
		return err
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return false, err
	}

	r.log.LogCreate(ctx, slog.String("trend_id", trendID), slog.Int("rows", len(posts)))
	return advanced, nil
}

func (r *scrapedPostRepository) ListByTrend(ctx context.Context, trendID string, limit, offset int) ([]models.ScrapedPost, error) {
	posts := make([]models.ScrapedPost, 0, limit)
	err := r.db.WithContext(ctx).
		Where("trend_id = ?", trendID).
		Order("engagement DESC").
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list scraped posts of trend %s: %w", trendID, err)
	}
	return posts, nil
}

func (r *scrapedPostRepository) MostRecent(ctx context.Context, trendID string, n int) ([]models.ScrapedPost, error) {
	var posts []models.ScrapedPost
	err := r.db.WithContext(ctx).
		Where("trend_id = ?", trendID).
		Order("posted_at DESC").
		Limit(n).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list recent scraped posts of trend %s: %w", trendID, err)
	}
	return posts, nil
}

func (r *scrapedPostRepository) CountByTrend(ctx context.Context, trendID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.ScrapedPost{}).Where("trend_id = ?", trendID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count scraped posts of trend %s: %w", trendID, err)
	}
	return n, nil
}
