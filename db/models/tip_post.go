package models

import (
	"time"
)

// Post status values shared by both record kinds.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusFailed    = "failed"
)

// TipPost record types.
const (
	TipTypeTip    = "tip"
	TipTypeImage  = "image"
	TipTypeCustom = "custom"
)

// TipPost is the history record for a tip, image or custom post.
type TipPost struct {
	ID        string `gorm:"primaryKey"`
	Type      string `gorm:"not null"`
	Category  string `gorm:"index;not null"`
	Content   string `gorm:"not null"`
	Date      time.Time
	Status    string `gorm:"index;not null"`
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name
func (TipPost) TableName() string {
	return "tip_posts"
}
