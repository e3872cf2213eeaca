package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStatus is the review state of a composed post.
type PostStatus string

const (
	// PostStatusDraft is the state of a freshly composed post.
	PostStatusDraft PostStatus = "draft"
	// PostStatusApproved marks a post as ready to publish.
	PostStatusApproved PostStatus = "approved"
	// PostStatusRejected marks a post the operator discarded.
	PostStatusRejected PostStatus = "rejected"
	// PostStatusPublished marks a post that is live on X.
	PostStatusPublished PostStatus = "published"
)

// Valid reports whether s is a known post status.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusApproved, PostStatusRejected, PostStatusPublished:
		return true
	}
	return false
}

// Editable reports whether an operator may set a post to s directly.
// Only publishing moves a post to published.
func (s PostStatus) Editable() bool {
	return s == PostStatusDraft || s == PostStatusApproved || s == PostStatusRejected
}

// Post is a composed piece of content for a trend.
type Post struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TrendID     string     `gorm:"type:varchar(36);not null;index" json:"trendId"`
	Trend       *Trend     `gorm:"foreignKey:TrendID;constraint:OnDelete:CASCADE" json:"-"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Status      PostStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	TweetID     *string    `gorm:"size:64" json:"tweetId"`
	TweetURL    *string    `gorm:"type:text" json:"tweetUrl"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// BeforeCreate assigns an ID and the initial status.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PostStatusDraft
	}
	return nil
}

// QueuedPost is a post listed with a reference to its trend.
type QueuedPost struct {
	Post
	Trend TrendRef `json:"trend"`
}

// PublishedTweet identifies a post created on X.
type PublishedTweet struct {
	ID  string
	URL string
}
