package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScrapedPost is a post fetched from the content search service for a trend.
type ScrapedPost struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TrendID      string    `gorm:"type:varchar(36);not null;index" json:"trendId"`
	Trend        *Trend    `gorm:"foreignKey:TrendID;constraint:OnDelete:CASCADE" json:"-"`
	URI          string    `gorm:"type:text;not null" json:"uri"`
	AuthorDID    string    `gorm:"column:author_did;size:255" json:"authorDid"`
	AuthorHandle string    `gorm:"size:255" json:"authorHandle"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Likes        int       `gorm:"not null;default:0" json:"likes"`
	Reposts      int       `gorm:"not null;default:0" json:"reposts"`
	Replies      int       `gorm:"not null;default:0" json:"replies"`
	Engagement   int       `gorm:"not null;default:0;index" json:"engagement"`
	PostedAt     time.Time `gorm:"index" json:"postedAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (ScrapedPost) TableName() string {
	return "scraped_posts"
}

// BeforeCreate assigns an ID.
func (p *ScrapedPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CandidatePost is a search result before it is scored and stored.
type CandidatePost struct {
	URI          string
	AuthorDID    string
	AuthorHandle string
	Content      string
	Likes        int
	Reposts      int
	Replies      int
	PostedAt     time.Time
}

// ToScrapedPost scores the candidate and binds it to a trend.
func (c CandidatePost) ToScrapedPost(trendID string) ScrapedPost {
	return ScrapedPost{
		TrendID:      trendID,
		URI:          c.URI,
		AuthorDID:    c.AuthorDID,
		AuthorHandle: c.AuthorHandle,
		Content:      c.Content,
		Likes:        c.Likes,
		Reposts:      c.Reposts,
		Replies:      c.Replies,
		Engagement:   Engagement(c.Likes, c.Reposts, c.Replies),
		PostedAt:     c.PostedAt,
	}
}

// ScrapeResult is the outcome of a scrape run.
type ScrapeResult struct {
	ScrapedCount int           `json:"scrapedCount"`
	TopPost      *ScrapedPost  `json:"topPost"`
	Posts        []ScrapedPost `json:"posts"`
}
