package repository

import (
	"github.com/castelle/tipcast/db/models"
	"gorm.io/gorm"
)

// PostedTipRepository tracks which tip texts the current rotation cycle
// has consumed, per category.
type PostedTipRepository interface {
	Add(category, text string) error
	Texts(category string) ([]string, error)
	Reset(category string) error
}

// GormPostedTipRepository implements PostedTipRepository using GORM
type GormPostedTipRepository struct {
	db *gorm.DB
}

// NewPostedTipRepository creates a new posted-tip repository
func NewPostedTipRepository(db *gorm.DB) PostedTipRepository {
	return &GormPostedTipRepository{db: db}
}

// Add marks a tip text as consumed in the current cycle
func (r *GormPostedTipRepository) Add(category, text string) error {
	return r.db.Create(&models.PostedTip{Category: category, Text: text}).Error
}

// Texts returns the consumed tip texts for a category
func (r *GormPostedTipRepository) Texts(category string) ([]string, error) {
	var texts []string
	err := r.db.Model(&models.PostedTip{}).
		Where("category = ?", category).
		Pluck("text", &texts).Error
	return texts, err
}

// Reset clears the cycle for a category
func (r *GormPostedTipRepository) Reset(category string) error {
	return r.db.Where("category = ?", category).Delete(&models.PostedTip{}).Error
}
