package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hospital-app-server/internal/models"
)

// LabRepository is the storage contract for lab tests. The lab status
// machine is independent of the appointment lifecycle.
type LabRepository interface {
	Create(ctx context.Context, t *models.LabTest) error
	FindByID(ctx context.Context, id string) (*models.LabTest, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.LabTest, error)
	ListByAppointment(ctx context.Context, appointmentID string) ([]models.LabTest, error)
	// ListOpen returns the lab worklist: requests not yet reported or cancelled.
	ListOpen(ctx context.Context) ([]models.LabTest, error)
	// UpdateStatusFrom is a compare-and-swap on the lab test's own status.
	UpdateStatusFrom(ctx context.Context, id string, from, to models.LabTestStatus) error
	// FileReport records the result and moves the test to reported.
	FileReport(ctx context.Context, id, result, reportedBy string) error
}

// GormLabRepository implements LabRepository on gorm.
type GormLabRepository struct {
	db *gorm.DB
}

// NewLabRepository creates a gorm-backed LabRepository.
func NewLabRepository(db *gorm.DB) *GormLabRepository {
	return &GormLabRepository{db: db}
}

func (r *GormLabRepository) Create(ctx context.Context, t *models.LabTest) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *GormLabRepository) FindByID(ctx context.Context, id string) (*models.LabTest, error) {
	var t models.LabTest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormLabRepository) ListByPatient(ctx context.Context, patientID string) ([]models.LabTest, error) {
	var rows []models.LabTest
	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("created_at asc").Find(&rows).Error
	return rows, err
}

func (r *GormLabRepository) ListByAppointment(ctx context.Context, appointmentID string) ([]models.LabTest, error) {
	var rows []models.LabTest
	err := r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).Order("created_at asc").Find(&rows).Error
	return rows, err
}

func (r *GormLabRepository) ListOpen(ctx context.Context) ([]models.LabTest, error) {
	var rows []models.LabTest
	err := r.db.WithContext(ctx).
		Where("status IN ?", []models.LabTestStatus{models.LabStatusRequested, models.LabStatusSampleCollected}).
		Order("created_at asc").
		Find(&rows).Error
	return rows, err
}

func (r *GormLabRepository) UpdateStatusFrom(ctx context.Context, id string, from, to models.LabTestStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.LabTest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *GormLabRepository) FileReport(ctx context.Context, id, result, reportedBy string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.LabTest{}).
		Where("id = ? AND status IN ?", id, []models.LabTestStatus{models.LabStatusRequested, models.LabStatusSampleCollected}).
		Updates(map[string]interface{}{
			"status":      models.LabStatusReported,
			"result":      result,
			"reported_by": reportedBy,
			"reported_at": &now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}
