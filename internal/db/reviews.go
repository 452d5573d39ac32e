package db

import (
	"context"
	"errors"

	"github.com/studycollab/collab-back/internal/models"
	"gorm.io/gorm"
)

var ErrAlreadyReviewed = errors.New("session already reviewed by this student")

func CreateReview(ctx context.Context, r *models.Review) error {
	err := DB.WithContext(ctx).Create(r).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyReviewed
	}
	return err
}

func ListReviewsBySession(ctx context.Context, sessionID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := DB.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at desc").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
