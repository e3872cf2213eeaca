// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"fmt"

	"trendsmith/internal/models"

	"gorm.io/gorm"
)

// scrapeBatchSize bounds the rows per INSERT when storing scraped posts.
const scrapeBatchSize = 100

// translateNotFound turns gorm.ErrRecordNotFound into a NotFound AppError.
func translateNotFound(err error, resource, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return fmt.Errorf("load %s %s: %w", resource, id, err)
}

// advanceTrendStatus moves a trend to status `to` unless it is already there or later.
// It reports whether the row changed.
func advanceTrendStatus(tx *gorm.DB, trendID string, to models.TrendStatus) (bool, error) {
	before := to.Predecessors()
	if len(before) == 0 {
		return false, nil
	}
	res := tx.Model(&models.Trend{}).
		Where("id = ? AND status IN ?", trendID, before).
		Update("status", to)
	if res.Error != nil {
		return false, fmt.Errorf("advance trend %s to %s: %w", trendID, to, res.Error)
	}
	return res.RowsAffected > 0, nil
}
