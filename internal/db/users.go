package db

import (
	"context"
	"strings"

	"github.com/studycollab/collab-back/internal/models"
)

func CreateUser(ctx context.Context, u *models.User) error {
	return DB.WithContext(ctx).Create(u).Error
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveOrUpdateUser upserts by email. Used by the Google login flow where
// the same account may sign in repeatedly.
func SaveOrUpdateUser(ctx context.Context, u models.User) (*models.User, error) {
	var existing models.User
	err := DB.WithContext(ctx).Where("email = ?", u.Email).First(&existing).Error
	if err != nil {
		if err := DB.WithContext(ctx).Create(&u).Error; err != nil {
			return nil, err
		}
		return &u, nil
	}

	updates := map[string]interface{}{}
	if u.Name != "" {
		updates["name"] = u.Name
	}
	if u.PhotoURL != "" {
		updates["photo_url"] = u.PhotoURL
	}
	if len(updates) > 0 {
		if err := DB.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &existing, nil
}

func SearchUsers(ctx context.Context, search string) ([]models.User, error) {
	var users []models.User
	tx := DB.WithContext(ctx).Order("created_at desc")
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}
	if err := tx.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserRole returns the number of rows changed so the handler can
// report modifiedCount the way the dashboard expects.
func UpdateUserRole(ctx context.Context, id string, role string) (int64, error) {
	tx := DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role)
	return tx.RowsAffected, tx.Error
}

func GetRoleByEmail(ctx context.Context, email string) (string, error) {
	var user models.User
	if err := DB.WithContext(ctx).Select("role").Where("email = ?", email).First(&user).Error; err != nil {
		return "", err
	}
	return user.Role, nil
}

func ListTutors(ctx context.Context) ([]models.User, error) {
	var tutors []models.User
	if err := DB.WithContext(ctx).Where("role = ?", models.RoleTutor).Order("name asc").Find(&tutors).Error; err != nil {
		return nil, err
	}
	return tutors, nil
}

func GetUserStats(ctx context.Context) (*models.UserStats, error) {
	var stats models.UserStats
	if err := DB.WithContext(ctx).Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := DB.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&stats.TotalStudents).Error; err != nil {
		return nil, err
	}
	if err := DB.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleTutor).Count(&stats.TotalTutors).Error; err != nil {
		return nil, err
	}
	if err := DB.WithContext(ctx).Model(&models.StudySession{}).Count(&stats.TotalSessions).Error; err != nil {
		return nil, err
	}
	if err := DB.WithContext(ctx).Model(&models.BookedSession{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
