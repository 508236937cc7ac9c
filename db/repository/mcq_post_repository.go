package repository

import (
	"errors"
	"time"

	"github.com/castelle/tipcast/db/models"
	"gorm.io/gorm"
)

// MCQPostRepository defines the interface for MCQ history operations
type MCQPostRepository interface {
	Create(post *models.MCQPost) error
	NextID() (int, error)
	FindByID(id int) (*models.MCQPost, error)
	All() ([]models.MCQPost, error)
	PostedContentIDs(statuses []string) ([]int, error)
	MarkPublished(id int, platformPostID string) error
	MarkFailed(id int) error
	FindAnswerable() (*models.MCQPost, error)
	MarkAnswerPosted(id int, answeredAt time.Time) error
	Delete(id int) error
	CountByStatus(status string) (int64, error)
}

// GormMCQPostRepository implements MCQPostRepository using GORM
type GormMCQPostRepository struct {
	db *gorm.DB
}

// NewMCQPostRepository creates a new MCQ history repository
func NewMCQPostRepository(db *gorm.DB) MCQPostRepository {
	return &GormMCQPostRepository{db: db}
}

// Create adds a new MCQ post record to the database
func (r *GormMCQPostRepository) Create(post *models.MCQPost) error {
	return r.db.Create(post).Error
}

// NextID returns the next sequential record id (max existing + 1, or 1).
func (r *GormMCQPostRepository) NextID() (int, error) {
	var maxID int
	err := r.db.Model(&models.MCQPost{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

// FindByID finds an MCQ post record by its id
func (r *GormMCQPostRepository) FindByID(id int) (*models.MCQPost, error) {
	var post models.MCQPost
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// All returns every MCQ post record, newest first
func (r *GormMCQPostRepository) All() ([]models.MCQPost, error) {
	var posts []models.MCQPost
	err := r.db.Order("date DESC").Find(&posts).Error
	return posts, err
}

// PostedContentIDs returns the question ids referenced by existing records,
// optionally restricted to a set of statuses.
func (r *GormMCQPostRepository) PostedContentIDs(statuses []string) ([]int, error) {
	var ids []int
	query := r.db.Model(&models.MCQPost{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Distinct().Pluck("content_id", &ids).Error
	return ids, err
}

// MarkPublished transitions a record to published and stores the platform post id
func (r *GormMCQPostRepository) MarkPublished(id int, platformPostID string) error {
	result := r.db.Model(&models.MCQPost{}).Where("id = ?", id).Updates(map[string]any{
		"status":            models.StatusPublished,
		"linked_in_post_id": platformPostID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkFailed transitions a record to failed
func (r *GormMCQPostRepository) MarkFailed(id int) error {
	result := r.db.Model(&models.MCQPost{}).Where("id = ?", id).Update("status", models.StatusFailed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindAnswerable returns the most recent published record whose answer has
// not been posted yet, or nil when there is none.
func (r *GormMCQPostRepository) FindAnswerable() (*models.MCQPost, error) {
	var post models.MCQPost
	err := r.db.
		Where("linked_in_post_id IS NOT NULL AND answer_posted = ?", false).
		Order("date DESC").
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// MarkAnswerPosted records that the answer follow-up went out
func (r *GormMCQPostRepository) MarkAnswerPosted(id int, answeredAt time.Time) error {
	result := r.db.Model(&models.MCQPost{}).Where("id = ?", id).Updates(map[string]any{
		"answer_posted": true,
		"answer_date":   answeredAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a record by id
func (r *GormMCQPostRepository) Delete(id int) error {
	result := r.db.Where("id = ?", id).Delete(&models.MCQPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus counts records with the given status
func (r *GormMCQPostRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.MCQPost{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
