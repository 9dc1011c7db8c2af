package repository

import (
	"context"

	"gorm.io/gorm"

	"hospital-app-server/internal/models"
)

// ClinicalRepository is the storage contract for vitals snapshots and
// prescriptions. Both are append-only.
type ClinicalRepository interface {
	InsertVitals(ctx context.Context, v *models.VitalsSnapshot) error
	ListVitalsByAppointment(ctx context.Context, appointmentID string) ([]models.VitalsSnapshot, error)
	// LatestVitalsByPatient returns the most recent snapshot, or nil when
	// the patient has none.
	LatestVitalsByPatient(ctx context.Context, patientID string) (*models.VitalsSnapshot, error)
	// CreatePrescription persists the prescription and all of its items in
	// one transaction; either everything lands or nothing does.
	CreatePrescription(ctx context.Context, p *models.Prescription) error
	ListPrescriptionsByAppointment(ctx context.Context, appointmentID string) ([]models.Prescription, error)
	ListPrescriptionsByPatient(ctx context.Context, patientID string) ([]models.Prescription, error)
	CountPrescriptionsByDoctor(ctx context.Context, doctorID string) (int64, error)
}

// GormClinicalRepository implements ClinicalRepository on gorm.
type GormClinicalRepository struct {
	db *gorm.DB
}

// NewClinicalRepository creates a gorm-backed ClinicalRepository.
func NewClinicalRepository(db *gorm.DB) *GormClinicalRepository {
	return &GormClinicalRepository{db: db}
}

func (r *GormClinicalRepository) InsertVitals(ctx context.Context, v *models.VitalsSnapshot) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *GormClinicalRepository) ListVitalsByAppointment(ctx context.Context, appointmentID string) ([]models.VitalsSnapshot, error) {
	var rows []models.VitalsSnapshot
	err := r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).Order("created_at asc").Find(&rows).Error
	return rows, err
}

func (r *GormClinicalRepository) LatestVitalsByPatient(ctx context.Context, patientID string) (*models.VitalsSnapshot, error) {
	var v models.VitalsSnapshot
	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("created_at desc").First(&v).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormClinicalRepository) CreatePrescription(ctx context.Context, p *models.Prescription) error {
	// gorm cascades the Items association inside the same transaction, but
	// being explicit keeps the all-or-nothing contract obvious.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
}

func (r *GormClinicalRepository) ListPrescriptionsByAppointment(ctx context.Context, appointmentID string) ([]models.Prescription, error) {
	var rows []models.Prescription
	err := r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Where("appointment_id = ?", appointmentID).Order("created_at asc").Find(&rows).Error
	return rows, err
}

func (r *GormClinicalRepository) ListPrescriptionsByPatient(ctx context.Context, patientID string) ([]models.Prescription, error) {
	var rows []models.Prescription
	err := r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Where("patient_id = ?", patientID).Order("created_at asc").Find(&rows).Error
	return rows, err
}

func (r *GormClinicalRepository) CountPrescriptionsByDoctor(ctx context.Context, doctorID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Prescription{}).Where("doctor_id = ?", doctorID).Count(&n).Error
	return n, err
}
