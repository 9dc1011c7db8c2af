package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"hospital-app-server/internal/apperrors"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/repository"
)

// Compile-time checks that the mocks satisfy the repository contracts.
var (
	_ repository.AppointmentRepository = (*MockAppointmentRepo)(nil)
	_ repository.DoctorRepository      = (*MockDoctorRepo)(nil)
	_ repository.PatientRepository     = (*MockPatientRepo)(nil)
	_ repository.ClinicalRepository    = (*MockClinicalRepo)(nil)
	_ repository.LabRepository         = (*MockLabRepo)(nil)
)

func ownedAppointment(status models.AppointmentStatus) *models.Appointment {
	appt := &models.Appointment{
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
		Status:    status,
		IsActive:  true,
	}
	appt.ID = "appt-1"
	return appt
}

func owningDoctor() *models.Doctor {
	doc := &models.Doctor{UserID: "user-doc-1", Specialization: "Cardiology", IsActive: true}
	doc.ID = "doctor-1"
	return doc
}

func TestAuthorizeOwner(t *testing.T) {
	appts := new(MockAppointmentRepo)
	doctors := new(MockDoctorRepo)
	appts.On("FindAliveByID", mock.Anything, "appt-1").Return(ownedAppointment(models.StatusScheduled), nil)
	doctors.On("FindByID", mock.Anything, "doctor-1").Return(owningDoctor(), nil)

	guard := NewOwnershipGuard(appts, doctors)
	appt, doc, err := guard.Authorize(context.Background(), "appt-1", "user-doc-1")

	assert.NoError(t, err)
	assert.Equal(t, "appt-1", appt.ID)
	assert.Equal(t, "doctor-1", doc.ID)
}

func TestAuthorizeWrongDoctorIsForbidden(t *testing.T) {
	appts := new(MockAppointmentRepo)
	doctors := new(MockDoctorRepo)
	appts.On("FindAliveByID", mock.Anything, "appt-1").Return(ownedAppointment(models.StatusScheduled), nil)
	doctors.On("FindByID", mock.Anything, "doctor-1").Return(owningDoctor(), nil)

	guard := NewOwnershipGuard(appts, doctors)
	_, _, err := guard.Authorize(context.Background(), "appt-1", "user-doc-2")

	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestAuthorizeMissingAppointmentFailsClosed(t *testing.T) {
	appts := new(MockAppointmentRepo)
	doctors := new(MockDoctorRepo)
	appts.On("FindAliveByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	guard := NewOwnershipGuard(appts, doctors)
	_, _, err := guard.Authorize(context.Background(), "nope", "user-doc-1")

	// A missing appointment is indistinguishable from someone else's.
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestAuthorizeMissingDoctorProfileFailsClosed(t *testing.T) {
	appts := new(MockAppointmentRepo)
	doctors := new(MockDoctorRepo)
	appts.On("FindAliveByID", mock.Anything, "appt-1").Return(ownedAppointment(models.StatusScheduled), nil)
	doctors.On("FindByID", mock.Anything, "doctor-1").Return(nil, gorm.ErrRecordNotFound)

	guard := NewOwnershipGuard(appts, doctors)
	_, _, err := guard.Authorize(context.Background(), "appt-1", "user-doc-1")

	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestAuthorizeNoIdentity(t *testing.T) {
	guard := NewOwnershipGuard(new(MockAppointmentRepo), new(MockDoctorRepo))
	_, _, err := guard.Authorize(context.Background(), "appt-1", "")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthenticated))
}

func TestAuthorizeStorageFailureIsUnexpected(t *testing.T) {
	appts := new(MockAppointmentRepo)
	doctors := new(MockDoctorRepo)
	appts.On("FindAliveByID", mock.Anything, "appt-1").Return(nil, errors.New("connection refused"))

	guard := NewOwnershipGuard(appts, doctors)
	_, _, err := guard.Authorize(context.Background(), "appt-1", "user-doc-1")

	assert.True(t, errors.Is(err, apperrors.ErrUnexpected))
	assert.False(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestIsOwner(t *testing.T) {
	appts := new(MockAppointmentRepo)
	doctors := new(MockDoctorRepo)
	appts.On("FindAliveByID", mock.Anything, "appt-1").Return(ownedAppointment(models.StatusScheduled), nil)
	doctors.On("FindByID", mock.Anything, "doctor-1").Return(owningDoctor(), nil)

	guard := NewOwnershipGuard(appts, doctors)
	assert.True(t, guard.IsOwner(context.Background(), "appt-1", "user-doc-1"))
	assert.False(t, guard.IsOwner(context.Background(), "appt-1", "someone-else"))
}
