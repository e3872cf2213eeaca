package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"trendsmith/internal/models"
	"trendsmith/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StyleCardRepository defines the interface for style card data operations
type StyleCardRepository interface {
	GetByID(ctx context.Context, id string) (*models.StyleCard, error)
	// GetByTrend returns the trend's card, or nil when it has none.
	GetByTrend(ctx context.Context, trendID string) (*models.StyleCard, error)
	ListForTrends(ctx context.Context, trendIDs []string) (map[string]*models.StyleCard, error)
	// ReplaceUnlocked deletes the trend's unlocked card and inserts card in one transaction.
	ReplaceUnlocked(ctx context.Context, card *models.StyleCard) error
	Save(ctx context.Context, card *models.StyleCard) error
	// SaveAndAdvance saves card and advances its trend to `to` in one transaction.
	SaveAndAdvance(ctx context.Context, card *models.StyleCard, to models.TrendStatus) (bool, error)
}

type styleCardRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewStyleCardRepository creates a new style card repository
func NewStyleCardRepository(db *gorm.DB) StyleCardRepository {
	return &styleCardRepository{db: db, log: observability.NewRepoLogger("style_cards")}
}

func (r *styleCardRepository) GetByID(ctx context.Context, id string) (*models.StyleCard, error) {
	var card models.StyleCard
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "StyleCard", id)
	}
	return &card, nil
}

func (r *styleCardRepository) GetByTrend(ctx context.Context, trendID string) (*models.StyleCard, error) {
	var card models.StyleCard
	err := r.db.WithContext(ctx).Where("trend_id = ?", trendID).Take(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load style card of trend %s: %w", trendID, err)
	}
	return &card, nil
}

func (r *styleCardRepository) ListForTrends(ctx context.Context, trendIDs []string) (map[string]*models.StyleCard, error) {
	out := make(map[string]*models.StyleCard, len(trendIDs))
	if len(trendIDs) == 0 {
		return out, nil
	}

	var cards []models.StyleCard
	if err := r.db.WithContext(ctx).Where("trend_id IN ?", trendIDs).Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list style cards: %w", err)
	}
	for i := range cards {
		out[cards[i].TrendID] = &cards[i]
	}
	return out, nil
}

func (r *styleCardRepository) ReplaceUnlocked(ctx context.Context, card *models.StyleCard) error {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "ReplaceUnlocked", "style_cards")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trend_id = ? AND locked = ?", card.TrendID, false).Delete(&models.StyleCard{}).Error; err != nil {
			return fmt.Errorf("delete unlocked style card of trend %s: %w", card.TrendID, err)
		}
		if err := tx.Omit(clause.Associations).Create(card).Error; err != nil {
			return fmt.Errorf("create style card: %w", err)
		}
		return nil
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return err
	}

	r.log.LogCreate(ctx, slog.String("trend_id", card.TrendID), slog.String("style_card_id", card.ID))
	return nil
}

func (r *styleCardRepository) Save(ctx context.Context, card *models.StyleCard) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(card).Error; err != nil {
		return fmt.Errorf("save style card %s: %w", card.ID, err)
	}
	r.log.LogUpdate(ctx, slog.String("style_card_id", card.ID))
	return nil
}

func (r *styleCardRepository) SaveAndAdvance(ctx context.Context, card *models.StyleCard, to models.TrendStatus) (bool, error) {
	var advanced bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(card).Error; err != nil {
			return fmt.Errorf("save style card %s: %w", card.ID, err)
		}
		var err error
		advanced, err = advanceTrendStatus(tx, card.TrendID, to)
		return err
	})
	if err != nil {
		return false, err
	}
	r.log.LogUpdate(ctx, slog.String("style_card_id", card.ID), slog.Bool("trend_advanced", advanced))
	return advanced, nil
}
