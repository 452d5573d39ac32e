package db

import (
	"context"

	"github.com/studycollab/collab-back/internal/models"
)

func CreateMaterial(ctx context.Context, m *models.Material) error {
	return DB.WithContext(ctx).Create(m).Error
}

func ListMaterialsByTutor(ctx context.Context, tutorEmail string) ([]models.Material, error) {
	var materials []models.Material
	if err := DB.WithContext(ctx).Where("tutor_email = ?", tutorEmail).Order("created_at desc").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func ListMaterialsBySession(ctx context.Context, sessionID string) ([]models.Material, error) {
	var materials []models.Material
	if err := DB.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at desc").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func ListAllMaterials(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	if err := DB.WithContext(ctx).Order("created_at desc").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

// DeleteMaterial with a tutor email is owner-scoped; with an empty email
// it is the admin path and removes any material.
func DeleteMaterial(ctx context.Context, id, tutorEmail string) (int64, error) {
	tx := DB.WithContext(ctx).Where("id = ?", id)
	if tutorEmail != "" {
		tx = tx.Where("tutor_email = ?", tutorEmail)
	}
	res := tx.Delete(&models.Material{})
	return res.RowsAffected, res.Error
}
