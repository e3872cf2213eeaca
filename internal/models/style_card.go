package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StyleCard is the LLM-derived style profile of a trend.
// A locked card is the prerequisite for composing posts.
type StyleCard struct {
	ID        string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TrendID   string                      `gorm:"type:varchar(36);not null;uniqueIndex" json:"trendId"`
	Trend     *Trend                      `gorm:"foreignKey:TrendID;constraint:OnDelete:CASCADE" json:"-"`
	Tone      string                      `gorm:"type:text;not null" json:"tone"`
	Format    string                      `gorm:"type:text;not null" json:"format"`
	MinWords  int                         `gorm:"not null" json:"minWords"`
	MaxWords  int                         `gorm:"not null" json:"maxWords"`
	Hooks     datatypes.JSONSlice[string] `gorm:"type:json;not null" json:"hooks"`
	Avoid     datatypes.JSONSlice[string] `gorm:"type:json;not null" json:"avoid"`
	Examples  datatypes.JSONSlice[string] `gorm:"type:json;not null" json:"examples"`
	Locked    bool                        `gorm:"not null;default:false" json:"locked"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (StyleCard) TableName() string {
	return "style_cards"
}

// BeforeCreate assigns an ID.
func (c *StyleCard) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.normalize()
	return nil
}

// BeforeSave keeps list columns non-null.
func (c *StyleCard) BeforeSave(tx *gorm.DB) error {
	c.normalize()
	return nil
}

func (c *StyleCard) normalize() {
	if c.Hooks == nil {
		c.Hooks = datatypes.JSONSlice[string]{}
	}
	if c.Avoid == nil {
		c.Avoid = datatypes.JSONSlice[string]{}
	}
	if c.Examples == nil {
		c.Examples = datatypes.JSONSlice[string]{}
	}
}

// ApplyProfile overwrites the card's style fields with p.
func (c *StyleCard) ApplyProfile(p StyleProfile) {
	c.Tone = p.Tone
	c.Format = p.Format
	c.MinWords = p.MinWords
	c.MaxWords = p.MaxWords
	c.Hooks = datatypes.JSONSlice[string](p.Hooks)
	c.Avoid = datatypes.JSONSlice[string](p.Avoid)
	c.Examples = datatypes.JSONSlice[string](p.Examples)
	c.normalize()
}

// Profile returns the style fields of the card.
func (c *StyleCard) Profile() StyleProfile {
	return StyleProfile{
		Tone:     c.Tone,
		Format:   c.Format,
		MinWords: c.MinWords,
		MaxWords: c.MaxWords,
		Hooks:    []string(c.Hooks),
		Avoid:    []string(c.Avoid),
		Examples: []string(c.Examples),
	}
}

// StyleProfile is the style description exchanged with the LLM.
type StyleProfile struct {
	Tone     string   `json:"tone"`
	Format   string   `json:"format"`
	MinWords int      `json:"min_words"`
	MaxWords int      `json:"max_words"`
	Hooks    []string `json:"hooks"`
	Avoid    []string `json:"avoid"`
	Examples []string `json:"examples"`
}

// StyleSample is a scraped post reduced to what style analysis reads.
type StyleSample struct {
	Content string `json:"content"`
	Likes   int    `json:"likes"`
	Reposts int    `json:"reposts"`
}
