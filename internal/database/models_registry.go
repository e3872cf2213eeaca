package database

import "trendsmith/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Parents precede children so AutoMigrate creates foreign keys in order.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Trend{},
		&models.ScrapedPost{},
		&models.StyleCard{},
		&models.Post{},
	}
}
