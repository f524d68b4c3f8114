package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusboard/noticeboard-service/internal/models"
	"github.com/campusboard/noticeboard-service/internal/repositories"
)

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialPostgreSQL(db *gorm.DB) repositories.MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	var material models.Material
	if err := r.db.WithContext(ctx).First(&material, id).Error; err != nil {
		return nil, handleDBError(err, "get material by id")
	}
	return &material, nil
}

func (r *materialRepository) Create(ctx context.Context, material *models.Material) error {
	if err := r.db.WithContext(ctx).Create(material).Error; err != nil {
		return handleDBError(err, "create material")
	}
	return nil
}

func (r *materialRepository) List(ctx context.Context) ([]*models.Material, error) {
	var materials []*models.Material
	if err := r.db.WithContext(ctx).Order("uploaded_at DESC").Find(&materials).Error; err != nil {
		return nil, handleDBError(err, "list materials")
	}
	return materials, nil
}

func (r *materialRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Material, error) {
	var materials []*models.Material
	if err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("uploaded_at DESC").
		Find(&materials).Error; err != nil {
		return nil, handleDBError(err, "list materials by teacher")
	}
	return materials, nil
}

func (r *materialRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Material{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete material")
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *materialRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Material{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count materials")
	}
	return count, nil
}
