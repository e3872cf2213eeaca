package repository

import (
	"context"
	"fmt"
	"log/slog"

	"trendsmith/internal/models"
	"trendsmith/internal/observability"

	"gorm.io/gorm"
)

// TrendRepository defines the interface for trend data operations
type TrendRepository interface {
	Create(ctx context.Context, trend *models.Trend) error
	GetByID(ctx context.Context, id string) (*models.Trend, error)
	List(ctx context.Context) ([]models.Trend, error)
	AdvanceStatus(ctx context.Context, id string, to models.TrendStatus) (bool, error)
	Delete(ctx context.Context, id string) error
	Counts(ctx context.Context, id string) (models.TrendCounts, error)
	CountsForTrends(ctx context.Context, ids []string) (map[string]models.TrendCounts, error)
}

type trendRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewTrendRepository creates a new trend repository
func NewTrendRepository(db *gorm.DB) TrendRepository {
	return &trendRepository{db: db, log: observability.NewRepoLogger("trends")}
}

func (r *trendRepository) Create(ctx context.Context, trend *models.Trend) error {
	if err := r.db.WithContext(ctx).Create(trend).Error; err != nil {
		return fmt.Errorf("create trend: %w", err)
	}
	r.log.LogCreate(ctx, slog.String("trend_id", trend.ID))
	return nil
}

func (r *trendRepository) GetByID(ctx context.Context, id string) (*models.Trend, error) {
	var trend models.Trend
	if err := r.db.WithContext(ctx).First(&trend, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "Trend", id)
	}
	return &trend, nil
}

func (r *trendRepository) List(ctx context.Context) ([]models.Trend, error) {
	defer observability.TrackQuery("list", "trends")()

	var trends []models.Trend
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&trends).Error; err != nil {
		return nil, fmt.Errorf("list trends: %w", err)
	}
	return trends, nil
}

func (r *trendRepository) AdvanceStatus(ctx context.Context, id string, to models.TrendStatus) (bool, error) {
	return advanceTrendStatus(r.db.WithContext(ctx), id, to)
}

// Delete removes the trend and every dependent row in one transaction.
func (r *trendRepository) Delete(ctx context.Context, id string) error {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "Delete", "trends")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{&models.Post{}, &models.StyleCard{}, &models.ScrapedPost{}} {
			if err := tx.Where("trend_id = ?", id).Delete(dependent).Error; err != nil {
				return fmt.Errorf("delete dependents of trend %s: %w", id, err)
			}
		}
		res := tx.Delete(&models.Trend{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete trend %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Trend", id)
		}
		return nil
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return err
	}

	r.log.LogDelete(ctx, slog.String("trend_id", id))
	return nil
}

func (r *trendRepository) Counts(ctx context.Context, id string) (models.TrendCounts, error) {
	counts, err := r.CountsForTrends(ctx, []string{id})
	if err != nil {
		return models.TrendCounts{}, err
	}
	return counts[id], nil
}

type trendCountRow struct {
	TrendID string
	Total   int64
}

// CountsForTrends returns scraped-post and post counts keyed by trend ID.
// Trends without dependents are present with zero counts.
func (r *trendRepository) CountsForTrends(ctx context.Context, ids []string) (map[string]models.TrendCounts, error) {
	out := make(map[string]models.TrendCounts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	for _, id := range ids {
		out[id] = models.TrendCounts{}
	}

	var scraped []trendCountRow
	if err := r.db.WithContext(ctx).Model(&models.ScrapedPost{}).
		Select("trend_id, COUNT(*) AS total").
		Where("trend_id IN ?", ids).
		Group("trend_id").
		Scan(&scraped).Error; err != nil {
		return nil, fmt.Errorf("count scraped posts: %w", err)
	}
	for _, row := range scraped {
		c := out[row.TrendID]
		c.ScrapedPosts = row.Total
		out[row.TrendID] = c
	}

	var posts []trendCountRow
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Select("trend_id, COUNT(*) AS total").
		Where("trend_id IN ?", ids).
		Group("trend_id").
		Scan(&posts).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	for _, row := range posts {
		c := out[row.TrendID]
		c.Posts = row.Total
		out[row.TrendID] = c
	}

	return out, nil
}
