package repository

import (
	"github.com/castelle/tipcast/db/models"
	"gorm.io/gorm"
)

// TipPostRepository defines the interface for tip history operations
type TipPostRepository interface {
	Create(post *models.TipPost) error
	UpdateStatus(id, status string) error
	FindByID(id string) (*models.TipPost, error)
	All() ([]models.TipPost, error)
	Delete(id string) error
	CountByStatus(status string) (int64, error)
	PublishedTexts() ([]string, error)
}

// GormTipPostRepository implements TipPostRepository using GORM
type GormTipPostRepository struct {
	db *gorm.DB
}

// NewTipPostRepository creates a new tip history repository
func NewTipPostRepository(db *gorm.DB) TipPostRepository {
	return &GormTipPostRepository{db: db}
}

// Create adds a new tip post record to the database
func (r *GormTipPostRepository) Create(post *models.TipPost) error {
	return r.db.Create(post).Error
}

// UpdateStatus transitions a record's publish status by id
func (r *GormTipPostRepository) UpdateStatus(id, status string) error {
	result := r.db.Model(&models.TipPost{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a tip post record by its id
func (r *GormTipPostRepository) FindByID(id string) (*models.TipPost, error) {
	var post models.TipPost
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// All returns every tip post record, newest first
func (r *GormTipPostRepository) All() ([]models.TipPost, error) {
	var posts []models.TipPost
	err := r.db.Order("date DESC").Find(&posts).Error
	return posts, err
}

// Delete removes a record by id
func (r *GormTipPostRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.TipPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus counts records with the given status
func (r *GormTipPostRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.TipPost{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// PublishedTexts returns the content of every published record
func (r *GormTipPostRepository) PublishedTexts() ([]string, error) {
	var texts []string
	err := r.db.Model(&models.TipPost{}).
		Where("status = ?", models.StatusPublished).
		Pluck("content", &texts).Error
	return texts, err
}
