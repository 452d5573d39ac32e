package db

import (
	"context"

	"github.com/studycollab/collab-back/internal/models"
	"gorm.io/gorm"
)

func CreateStudySession(ctx context.Context, s *models.StudySession) error {
	return DB.WithContext(ctx).Create(s).Error
}

func GetStudySession(ctx context.Context, id string) (*models.StudySession, error) {
	var session models.StudySession
	if err := DB.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// ListStudySessions filters by tutor email and/or status; empty filters
// return everything, newest first.
func ListStudySessions(ctx context.Context, tutorEmail, status string) ([]models.StudySession, error) {
	var sessions []models.StudySession
	tx := DB.WithContext(ctx).Order("created_at desc")
	if tutorEmail != "" {
		tx = tx.Where("tutor_email = ?", tutorEmail)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if err := tx.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func ListApprovedSessions(ctx context.Context, limit int) ([]models.StudySession, error) {
	var sessions []models.StudySession
	tx := DB.WithContext(ctx).Where("status = ?", models.StatusApproved).Order("created_at desc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func PaginateSessions(ctx context.Context, page, limit int, status string) ([]models.StudySession, int64, error) {
	var sessions []models.StudySession
	var total int64

	tx := DB.WithContext(ctx).Model(&models.StudySession{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := tx.Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// ApproveStudySession writes status and fee in a single UPDATE guarded on
// the pending state. Zero rows affected means the session was missing or
// not pending.
func ApproveStudySession(ctx context.Context, id string, fee float64) (int64, error) {
	tx := DB.WithContext(ctx).Model(&models.StudySession{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{
			"status":           models.StatusApproved,
			"registration_fee": fee,
		})
	return tx.RowsAffected, tx.Error
}

func RejectStudySession(ctx context.Context, id string, reason string) (int64, error) {
	tx := DB.WithContext(ctx).Model(&models.StudySession{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{
			"status":           models.StatusRejected,
			"rejection_reason": reason,
		})
	return tx.RowsAffected, tx.Error
}

// ResubmitStudySession resets a rejected session back to pending for its
// owning tutor and clears the old rejection reason.
func ResubmitStudySession(ctx context.Context, id string, tutorEmail string) (int64, error) {
	tx := DB.WithContext(ctx).Model(&models.StudySession{}).
		Where("id = ? AND status = ? AND tutor_email = ?", id, models.StatusRejected, tutorEmail).
		Updates(map[string]interface{}{
			"status":           models.StatusPending,
			"rejection_reason": "",
		})
	return tx.RowsAffected, tx.Error
}

func UpdateStudySessionFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	tx := DB.WithContext(ctx).Model(&models.StudySession{}).
		Where("id = ?", id).
		Updates(fields)
	return tx.RowsAffected, tx.Error
}

// DeleteStudySession removes a non-pending session together with its
// bookings, materials and reviews. Pending sessions are refused.
func DeleteStudySession(ctx context.Context, id string) (int64, error) {
	var deleted int64
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND status <> ?", id, models.StatusPending).Delete(&models.StudySession{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		if deleted == 0 {
			return nil
		}
		if err := tx.Where("session_id = ?", id).Delete(&models.BookedSession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", id).Delete(&models.Material{}).Error; err != nil {
			return err
		}
		return tx.Where("session_id = ?", id).Delete(&models.Review{}).Error
	})
	return deleted, err
}
