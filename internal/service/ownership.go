// Package service holds the domain operations behind the HTTP boundary:
// the ownership guard, the appointment lifecycle, the clinical record
// writer and the read-side aggregators.
package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hospital-app-server/internal/apperrors"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/repository"
)

// OwnershipGuard decides whether a doctor may act on an appointment. It
// walks the Appointment.DoctorID → Doctor.ID → Doctor.UserID chain and
// compares the user id case-sensitively against the caller.
//
// The guard fails closed: a missing appointment, a missing doctor profile
// and a mismatched owner all come back as ErrForbidden, so callers cannot
// distinguish "does not exist" from "belongs to someone else".
type OwnershipGuard struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
}

// NewOwnershipGuard creates an OwnershipGuard over the given repositories.
func NewOwnershipGuard(appointments repository.AppointmentRepository, doctors repository.DoctorRepository) *OwnershipGuard {
	return &OwnershipGuard{appointments: appointments, doctors: doctors}
}

// Authorize resolves the active appointment and confirms the caller owns
// it, returning both the appointment and the caller's doctor profile. Every
// mutating operation calls this before touching any record.
func (g *OwnershipGuard) Authorize(ctx context.Context, appointmentID, doctorUserID string) (*models.Appointment, *models.Doctor, error) {
	if doctorUserID == "" {
		return nil, nil, apperrors.ErrUnauthenticated
	}

	appt, err := g.appointments.FindAliveByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrForbidden
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	doctor, err := g.doctors.FindByID(ctx, appt.DoctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrForbidden
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	if doctor.UserID != doctorUserID {
		return nil, nil, apperrors.ErrForbidden
	}
	return appt, doctor, nil
}

// IsOwner is the boolean form of Authorize.
func (g *OwnershipGuard) IsOwner(ctx context.Context, appointmentID, doctorUserID string) bool {
	_, _, err := g.Authorize(ctx, appointmentID, doctorUserID)
	return err == nil
}
