package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"hospital-app-server/internal/apperrors"
	"hospital-app-server/internal/lifecycle"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/repository"
)

type apptFixture struct {
	appts    *MockAppointmentRepo
	doctors  *MockDoctorRepo
	patients *MockPatientRepo
	clinical *MockClinicalRepo
	labs     *MockLabRepo
	svc      *AppointmentService
}

func newApptFixture() *apptFixture {
	f := &apptFixture{
		appts:    new(MockAppointmentRepo),
		doctors:  new(MockDoctorRepo),
		patients: new(MockPatientRepo),
		clinical: new(MockClinicalRepo),
		labs:     new(MockLabRepo),
	}
	guard := NewOwnershipGuard(f.appts, f.doctors)
	f.svc = NewAppointmentService(guard, f.appts, f.doctors, f.patients, f.clinical, f.labs, zerolog.Nop())
	return f
}

func (f *apptFixture) owns(appt *models.Appointment) {
	f.appts.On("FindAliveByID", mock.Anything, appt.ID).Return(appt, nil)
	f.doctors.On("FindByID", mock.Anything, appt.DoctorID).Return(owningDoctor(), nil)
}

func TestUpdateStatusAccept(t *testing.T) {
	f := newApptFixture()
	f.owns(ownedAppointment(models.StatusScheduled))
	f.appts.On("UpdateStatusFrom", mock.Anything, "appt-1", models.StatusScheduled, models.StatusAccepted).Return(nil)

	appt, err := f.svc.UpdateStatus(context.Background(), "appt-1", lifecycle.ActionAccept, "user-doc-1")

	assert.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, appt.Status)
}

func TestUpdateStatusIllegalJump(t *testing.T) {
	f := newApptFixture()
	f.owns(ownedAppointment(models.StatusScheduled))

	_, err := f.svc.UpdateStatus(context.Background(), "appt-1", lifecycle.ActionComplete, "user-doc-1")

	assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
	// The record must not have been touched.
	f.appts.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusCompleteTwice(t *testing.T) {
	f := newApptFixture()
	appt := ownedAppointment(models.StatusPrescriptionPending)
	f.owns(appt)
	f.appts.On("UpdateStatusFrom", mock.Anything, "appt-1", models.StatusPrescriptionPending, models.StatusCompleted).Return(nil)

	updated, err := f.svc.UpdateStatus(context.Background(), "appt-1", lifecycle.ActionComplete, "user-doc-1")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	// Second complete: the appointment now reads completed.
	f2 := newApptFixture()
	f2.owns(ownedAppointment(models.StatusCompleted))
	_, err = f2.svc.UpdateStatus(context.Background(), "appt-1", lifecycle.ActionComplete, "user-doc-1")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
}

func TestUpdateStatusLostRace(t *testing.T) {
	f := newApptFixture()
	f.owns(ownedAppointment(models.StatusAccepted))
	// The CAS fails because a concurrent writer already moved the status.
	f.appts.On("UpdateStatusFrom", mock.Anything, "appt-1", models.StatusAccepted, models.StatusInProgress).
		Return(repository.ErrStaleStatus)

	_, err := f.svc.UpdateStatus(context.Background(), "appt-1", lifecycle.ActionStart, "user-doc-1")

	assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
}

func TestUpdateStatusCrossDoctorForbidden(t *testing.T) {
	f := newApptFixture()
	f.owns(ownedAppointment(models.StatusScheduled))

	_, err := f.svc.UpdateStatus(context.Background(), "appt-1", lifecycle.ActionStart, "user-doc-intruder")

	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	f.appts.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusFollowUpKeepsStatus(t *testing.T) {
	f := newApptFixture()
	f.owns(ownedAppointment(models.StatusCompleted))
	f.appts.On("SetFollowUp", mock.Anything, "appt-1").Return(nil)

	appt, err := f.svc.UpdateStatus(context.Background(), "appt-1", lifecycle.ActionFollowUp, "user-doc-1")

	assert.NoError(t, err)
	assert.True(t, appt.FollowUpRequired)
	assert.Equal(t, models.StatusCompleted, appt.Status, "followup must not un-complete the appointment")
	f.appts.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookValidatesFutureTime(t *testing.T) {
	f := newApptFixture()
	patient := &models.Patient{UserID: "user-pat-1", IsActive: true}
	patient.ID = "patient-1"
	f.patients.On("FindAliveByID", mock.Anything, "patient-1").Return(patient, nil)
	f.doctors.On("FindByID", mock.Anything, "doctor-1").Return(owningDoctor(), nil)

	_, err := f.svc.Book(context.Background(), BookingInput{
		DoctorID:    "doctor-1",
		PatientID:   "patient-1",
		ScheduledAt: time.Now().Add(-time.Hour),
		Reason:      "checkup",
	}, "user-pat-1", models.RolePatient)

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	f.appts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookForOtherPatientForbidden(t *testing.T) {
	f := newApptFixture()
	patient := &models.Patient{UserID: "user-pat-1", IsActive: true}
	patient.ID = "patient-1"
	f.patients.On("FindAliveByID", mock.Anything, "patient-1").Return(patient, nil)

	_, err := f.svc.Book(context.Background(), BookingInput{
		DoctorID:    "doctor-1",
		PatientID:   "patient-1",
		ScheduledAt: time.Now().Add(time.Hour),
		Reason:      "checkup",
	}, "user-pat-2", models.RolePatient)

	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestBookPendingForPatient(t *testing.T) {
	f := newApptFixture()
	patient := &models.Patient{UserID: "user-pat-1", IsActive: true}
	patient.ID = "patient-1"
	f.patients.On("FindAliveByID", mock.Anything, "patient-1").Return(patient, nil)
	f.doctors.On("FindByID", mock.Anything, "doctor-1").Return(owningDoctor(), nil)
	f.appts.On("Create", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil)

	appt, err := f.svc.Book(context.Background(), BookingInput{
		DoctorID:    "doctor-1",
		PatientID:   "patient-1",
		ScheduledAt: time.Now().Add(time.Hour),
		Reason:      "checkup",
	}, "user-pat-1", models.RolePatient)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, models.TypeInPerson, appt.Type)
}

func TestCancelOwnAppointment(t *testing.T) {
	f := newApptFixture()
	appt := ownedAppointment(models.StatusScheduled)
	patient := &models.Patient{UserID: "user-pat-1", IsActive: true}
	patient.ID = "patient-1"
	f.appts.On("FindAliveByID", mock.Anything, "appt-1").Return(appt, nil)
	f.patients.On("FindAliveByID", mock.Anything, "patient-1").Return(patient, nil)
	f.appts.On("UpdateStatusFrom", mock.Anything, "appt-1", models.StatusScheduled, models.StatusCancelled).Return(nil)

	updated, err := f.svc.Cancel(context.Background(), "appt-1", "user-pat-1")

	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
}

func TestCancelSomeoneElsesAppointment(t *testing.T) {
	f := newApptFixture()
	appt := ownedAppointment(models.StatusScheduled)
	patient := &models.Patient{UserID: "user-pat-1", IsActive: true}
	patient.ID = "patient-1"
	f.appts.On("FindAliveByID", mock.Anything, "appt-1").Return(appt, nil)
	f.patients.On("FindAliveByID", mock.Anything, "patient-1").Return(patient, nil)

	_, err := f.svc.Cancel(context.Background(), "appt-1", "user-pat-2")

	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	f.appts.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelCompletedAppointment(t *testing.T) {
	f := newApptFixture()
	appt := ownedAppointment(models.StatusCompleted)
	patient := &models.Patient{UserID: "user-pat-1", IsActive: true}
	patient.ID = "patient-1"
	f.appts.On("FindAliveByID", mock.Anything, "appt-1").Return(appt, nil)
	f.patients.On("FindAliveByID", mock.Anything, "patient-1").Return(patient, nil)

	_, err := f.svc.Cancel(context.Background(), "appt-1", "user-pat-1")

	assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
}

func TestCheckupAggregatesRecords(t *testing.T) {
	f := newApptFixture()
	appt := ownedAppointment(models.StatusInProgress)
	f.owns(appt)

	patient := &models.Patient{UserID: "user-pat-1", IsActive: true}
	patient.ID = "patient-1"
	f.patients.On("FindAliveByID", mock.Anything, "patient-1").Return(patient, nil)
	f.clinical.On("ListVitalsByAppointment", mock.Anything, "appt-1").Return([]models.VitalsSnapshot{{HeightCm: 170}}, nil)
	f.clinical.On("ListPrescriptionsByAppointment", mock.Anything, "appt-1").Return([]models.Prescription{}, nil)
	f.labs.On("ListByAppointment", mock.Anything, "appt-1").Return([]models.LabTest{{TestName: "CBC"}}, nil)

	view, err := f.svc.Checkup(context.Background(), "appt-1", "user-doc-1")

	assert.NoError(t, err)
	assert.Len(t, view.Vitals, 1)
	assert.Len(t, view.LabTests, 1)
	assert.Equal(t, models.StatusInProgress, view.Appointment.Status)
}

func TestTodaysAppointmentsUsesDayWindow(t *testing.T) {
	f := newApptFixture()
	f.doctors.On("FindByUserID", mock.Anything, "user-doc-1").Return(owningDoctor(), nil)
	f.appts.On("ListByDoctorBetween", mock.Anything, "doctor-1", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			from := args.Get(2).(time.Time)
			to := args.Get(3).(time.Time)
			assert.Equal(t, 24*time.Hour, to.Sub(from))
			assert.Equal(t, 0, from.Hour())
		}).
		Return([]models.Appointment{}, nil)

	_, err := f.svc.TodaysAppointments(context.Background(), "user-doc-1")
	assert.NoError(t, err)
}

func TestTodaysAppointmentsForNonDoctor(t *testing.T) {
	f := newApptFixture()
	f.doctors.On("FindByUserID", mock.Anything, "user-pat-1").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.TodaysAppointments(context.Background(), "user-pat-1")
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}
