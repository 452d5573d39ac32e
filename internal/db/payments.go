package db

import (
	"context"
	"errors"
	"time"

	"github.com/studycollab/collab-back/internal/models"
	"gorm.io/gorm"
)

// RecordPayment stores the completed charge and marks the student's
// booking paid in the same transaction, creating the booking if the
// payment came through before one existed.
func RecordPayment(ctx context.Context, p *models.Payment, sessionTitle, tutorEmail string) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyBooked
			}
			return err
		}

		var booking models.BookedSession
		err := tx.Where("session_id = ? AND student_email = ?", p.SessionID, p.Email).First(&booking).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			booking = models.BookedSession{
				SessionID:     p.SessionID,
				SessionTitle:  sessionTitle,
				TutorEmail:    tutorEmail,
				StudentEmail:  p.Email,
				PaymentStatus: models.PaymentPaid,
				TransactionID: p.TransactionID,
				BookedAt:      time.Now(),
			}
			return tx.Create(&booking).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&booking).Updates(map[string]interface{}{
			"payment_status": models.PaymentPaid,
			"transaction_id": p.TransactionID,
		}).Error
	})
}

func ListPaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := DB.WithContext(ctx).Where("email = ?", email).Order("paid_at desc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
