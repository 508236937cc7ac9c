package models

import (
	"time"
)

// PostedTip marks a tip text as consumed in the current rotation cycle.
// Rows for a category are deleted together when the cycle resets.
type PostedTip struct {
	ID        uint   `gorm:"primaryKey"`
	Category  string `gorm:"uniqueIndex:idx_posted_tips_category_text;not null"`
	Text      string `gorm:"uniqueIndex:idx_posted_tips_category_text;not null"`
	CreatedAt time.Time
}

// TableName overrides the table name
func (PostedTip) TableName() string {
	return "posted_tips"
}
