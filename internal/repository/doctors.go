package repository

import (
	"context"

	"gorm.io/gorm"

	"hospital-app-server/internal/models"
)

// DoctorRepository is the storage contract for doctor profiles.
type DoctorRepository interface {
	FindByID(ctx context.Context, id string) (*models.Doctor, error)
	// FindByUserID resolves the doctor profile linked to a login user; the
	// ownership guard walks this join.
	FindByUserID(ctx context.Context, userID string) (*models.Doctor, error)
	ListActive(ctx context.Context) ([]models.Doctor, error)
}

// GormDoctorRepository implements DoctorRepository on gorm.
type GormDoctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a gorm-backed DoctorRepository.
func NewDoctorRepository(db *gorm.DB) *GormDoctorRepository {
	return &GormDoctorRepository{db: db}
}

func (r *GormDoctorRepository) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	var doc models.Doctor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *GormDoctorRepository) FindByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	var doc models.Doctor
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *GormDoctorRepository) ListActive(ctx context.Context) ([]models.Doctor, error) {
	var docs []models.Doctor
	err := r.db.WithContext(ctx).Preload("User").Where("is_active = ?", true).Find(&docs).Error
	return docs, err
}
