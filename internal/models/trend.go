// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrendStatus is the lifecycle position of a trend.
type TrendStatus string

const (
	// TrendStatusNew indicates a trend that has never been scraped.
	TrendStatusNew TrendStatus = "new"
	// TrendStatusScraped indicates scraped posts are stored for the trend.
	TrendStatusScraped TrendStatus = "scraped"
	// TrendStatusStyled indicates the trend's style card has been locked.
	TrendStatusStyled TrendStatus = "styled"
	// TrendStatusActive indicates drafts have been composed for the trend.
	TrendStatusActive TrendStatus = "active"
)

var trendStatusRank = map[TrendStatus]int{
	TrendStatusNew:     0,
	TrendStatusScraped: 1,
	TrendStatusStyled:  2,
	TrendStatusActive:  3,
}

// Valid reports whether s is a known trend status.
func (s TrendStatus) Valid() bool {
	_, ok := trendStatusRank[s]
	return ok
}

// Advance returns whichever of s and to is further along the lifecycle.
// Status never moves backwards.
func (s TrendStatus) Advance(to TrendStatus) TrendStatus {
	if trendStatusRank[to] > trendStatusRank[s] {
		return to
	}
	return s
}

// Predecessors lists the statuses that precede s in the lifecycle.
func (s TrendStatus) Predecessors() []TrendStatus {
	var out []TrendStatus
	for _, candidate := range []TrendStatus{TrendStatusNew, TrendStatusScraped, TrendStatusStyled, TrendStatusActive} {
		if trendStatusRank[candidate] < trendStatusRank[s] {
			out = append(out, candidate)
		}
	}
	return out
}

// Trend is a tracked topic with search keywords and a lifecycle status.
type Trend struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string      `gorm:"size:200;not null" json:"name"`
	Keywords    string      `gorm:"type:text;not null" json:"keywords"`
	Description *string     `gorm:"type:text" json:"description"`
	Status      TrendStatus `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`
	CreatedAt   time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Trend) TableName() string {
	return "trends"
}

// BeforeCreate assigns an ID and the initial status.
func (t *Trend) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TrendStatusNew
	}
	return nil
}

// TrendCounts holds the number of dependents stored for a trend.
type TrendCounts struct {
	ScrapedPosts int64 `json:"scrapedPosts"`
	Posts        int64 `json:"posts"`
}

// TrendDetail is a trend together with its style card and dependent counts.
type TrendDetail struct {
	Trend
	StyleCard *StyleCard  `json:"styleCard"`
	Count     TrendCounts `json:"_count"`
}

// TrendRef is the short form of a trend embedded in other responses.
type TrendRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
