package repository

import (
	"fmt"
	"strings"

	"hungerhub/models"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(fb models.Feedback) (*models.Feedback, error) {
	fb.ID = 0
	fb.Name = strings.TrimSpace(fb.Name)

	if err := validate.Struct(&fb); err != nil {
		return nil, fmt.Errorf("%w: name and a 1-5 rating are required", ErrValidation)
	}

	if err := r.db.Create(&fb).Error; err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return &fb, nil
}

// Recent returns the latest feedback entries, newest first.
func (r *FeedbackRepository) Recent(limit int) ([]models.Feedback, error) {
	entries := make([]models.Feedback, 0)
	q := r.db.Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return entries, nil
}
