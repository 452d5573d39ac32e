package db

import (
	"context"

	"github.com/studycollab/collab-back/internal/models"
)

func CreateNote(ctx context.Context, n *models.Note) error {
	return DB.WithContext(ctx).Create(n).Error
}

func ListNotesByEmail(ctx context.Context, email string) ([]models.Note, error) {
	var notes []models.Note
	if err := DB.WithContext(ctx).Where("email = ?", email).Order("created_at desc").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote is owner-scoped: the email must match the note's owner.
func UpdateNote(ctx context.Context, id, email, title, description string) (int64, error) {
	tx := DB.WithContext(ctx).Model(&models.Note{}).
		Where("id = ? AND email = ?", id, email).
		Updates(map[string]interface{}{"title": title, "description": description})
	return tx.RowsAffected, tx.Error
}

func DeleteNote(ctx context.Context, id, email string) (int64, error) {
	tx := DB.WithContext(ctx).Where("id = ? AND email = ?", id, email).Delete(&models.Note{})
	return tx.RowsAffected, tx.Error
}
