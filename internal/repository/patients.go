package repository

import (
	"context"

	"gorm.io/gorm"

	"hospital-app-server/internal/models"
)

// PatientRepository is the storage contract for patient profiles and their
// patient-scoped reference rows (chronic diseases, allergies).
type PatientRepository interface {
	FindAliveByID(ctx context.Context, id string) (*models.Patient, error)
	FindByUserID(ctx context.Context, userID string) (*models.Patient, error)
	ListChronicDiseases(ctx context.Context, patientID string) ([]models.ChronicDisease, error)
	ListAllergies(ctx context.Context, patientID string) ([]models.Allergy, error)
}

// GormPatientRepository implements PatientRepository on gorm.
type GormPatientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a gorm-backed PatientRepository.
func NewPatientRepository(db *gorm.DB) *GormPatientRepository {
	return &GormPatientRepository{db: db}
}

func (r *GormPatientRepository) FindAliveByID(ctx context.Context, id string) (*models.Patient, error) {
	var p models.Patient
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ? AND is_active = ?", id, true).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormPatientRepository) FindByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	var p models.Patient
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormPatientRepository) ListChronicDiseases(ctx context.Context, patientID string) ([]models.ChronicDisease, error) {
	var rows []models.ChronicDisease
	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("created_at asc").Find(&rows).Error
	return rows, err
}

func (r *GormPatientRepository) ListAllergies(ctx context.Context, patientID string) ([]models.Allergy, error) {
	var rows []models.Allergy
	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("created_at asc").Find(&rows).Error
	return rows, err
}
