// Package repository exposes explicit per-entity data access. Soft deletion
// is never an invisible filter: callers pick FindAliveByID or FindAnyByID.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hospital-app-server/internal/models"
)

// ErrStaleStatus is returned by UpdateStatusFrom when the row's status no
// longer matches the observed value, i.e. a concurrent writer won the swap.
var ErrStaleStatus = errors.New("appointment status changed concurrently")

// AppointmentRepository is the storage contract for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	// FindAliveByID resolves an active (not soft-deleted) appointment.
	FindAliveByID(ctx context.Context, id string) (*models.Appointment, error)
	// FindAnyByID resolves an appointment regardless of the active flag;
	// history aggregation uses this path so old encounters stay visible.
	FindAnyByID(ctx context.Context, id string) (*models.Appointment, error)
	// UpdateStatusFrom performs the compare-and-swap status write. Exactly
	// one of two racing callers succeeds; the loser gets ErrStaleStatus.
	UpdateStatusFrom(ctx context.Context, id string, from, to models.AppointmentStatus) error
	// SetFollowUp flips the follow-up flag without touching the status.
	SetFollowUp(ctx context.Context, id string) error
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	// ListByDoctorBetween returns the doctor's active appointments scheduled
	// in [from, to), ascending by time.
	ListByDoctorBetween(ctx context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	// CountByDoctorAndPatient counts encounters linking a doctor and a
	// patient in any state; the history authorization policy relies on it.
	CountByDoctorAndPatient(ctx context.Context, doctorID, patientID string) (int64, error)
}

// GormAppointmentRepository implements AppointmentRepository on gorm.
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a gorm-backed AppointmentRepository.
func NewAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

func (r *GormAppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *GormAppointmentRepository) FindAliveByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *GormAppointmentRepository) FindAnyByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *GormAppointmentRepository) UpdateStatusFrom(ctx context.Context, id string, from, to models.AppointmentStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
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

func (r *GormAppointmentRepository) SetFollowUp(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("follow_up_required", true).Error
}

func (r *GormAppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND is_active = ?", doctorID, true).
		Order("scheduled_at asc").
		Find(&appts).Error
	return appts, err
}

func (r *GormAppointmentRepository) ListByDoctorBetween(ctx context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND is_active = ? AND scheduled_at >= ? AND scheduled_at < ?", doctorID, true, from, to).
		Order("scheduled_at asc").
		Find(&appts).Error
	return appts, err
}

func (r *GormAppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("scheduled_at asc").
		Find(&appts).Error
	return appts, err
}

func (r *GormAppointmentRepository) CountByDoctorAndPatient(ctx context.Context, doctorID, patientID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Count(&n).Error
	return n, err
}
