package db

import (
	"context"
	"errors"

	"github.com/studycollab/collab-back/internal/models"
	"gorm.io/gorm"
)

// ErrAlreadyBooked reports a duplicate (session, student) booking. The
// unique index is the source of truth; this just names the violation.
var ErrAlreadyBooked = errors.New("session already booked by this student")

func CreateBooking(ctx context.Context, b *models.BookedSession) error {
	err := DB.WithContext(ctx).Create(b).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyBooked
	}
	return err
}

func ListBookingsByEmail(ctx context.Context, email string) ([]models.BookedSession, error) {
	var bookings []models.BookedSession
	if err := DB.WithContext(ctx).Where("student_email = ?", email).Order("booked_at desc").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func GetBooking(ctx context.Context, sessionID, studentEmail string) (*models.BookedSession, error) {
	var booking models.BookedSession
	if err := DB.WithContext(ctx).
		Where("session_id = ? AND student_email = ?", sessionID, studentEmail).
		First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func CountBookings(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&models.BookedSession{}).
		Where("session_id = ?", sessionID).Count(&count).Error
	return count, err
}

func ListAllBookings(ctx context.Context) ([]models.BookedSession, error) {
	var bookings []models.BookedSession
	if err := DB.WithContext(ctx).Order("booked_at desc").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
