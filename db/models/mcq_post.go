package models

import (
	"time"
)

// MCQPost is the history record for a posted quiz question. It carries the
// two-phase answer state: LinkedInPostID is set once the question publish
// succeeds, AnswerPosted once the follow-up comment goes out.
type MCQPost struct {
	ID             int    `gorm:"primaryKey;autoIncrement:false"`
	ContentID      int    `gorm:"index;not null"`
	Content        string `gorm:"not null"`
	Answer         string `gorm:"not null"`
	Explanation    string
	Category       string `gorm:"index;not null"`
	Difficulty     string `gorm:"not null"`
	Date           time.Time
	LinkedInPostID *string
	Status         string `gorm:"index;not null"`
	AnswerPosted   bool   `gorm:"not null;default:false"`
	AnswerDate     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides the table name
func (MCQPost) TableName() string {
	return "mcq_posts"
}
