package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"hospital-app-server/internal/apperrors"
	"hospital-app-server/internal/lifecycle"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/repository"
)

// AppointmentService drives the appointment lifecycle and the encounter
// read views.
type AppointmentService struct {
	guard        *OwnershipGuard
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	patients     repository.PatientRepository
	clinical     repository.ClinicalRepository
	labs         repository.LabRepository
	log          zerolog.Logger
}

// NewAppointmentService wires an AppointmentService.
func NewAppointmentService(
	guard *OwnershipGuard,
	appointments repository.AppointmentRepository,
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	clinical repository.ClinicalRepository,
	labs repository.LabRepository,
	log zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		guard:        guard,
		appointments: appointments,
		doctors:      doctors,
		patients:     patients,
		clinical:     clinical,
		labs:         labs,
		log:          log,
	}
}

// UpdateStatus applies a named lifecycle action to an appointment on behalf
// of its owning doctor. The status write is a compare-and-swap against the
// status observed here, so one of two racing callers loses and gets
// ErrInvalidTransition instead of double-applying.
func (s *AppointmentService) UpdateStatus(ctx context.Context, appointmentID string, action lifecycle.Action, doctorUserID string) (*models.Appointment, error) {
	appt, _, err := s.guard.Authorize(ctx, appointmentID, doctorUserID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Check(action, appt.Status); err != nil {
		return nil, err
	}

	if lifecycle.IsFlagOnly(action) {
		if err := s.appointments.SetFollowUp(ctx, appt.ID); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
		}
		appt.FollowUpRequired = true
		return appt, nil
	}

	target := lifecycle.Target(action)
	if err := s.appointments.UpdateStatusFrom(ctx, appt.ID, appt.Status, target); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, apperrors.Wrapf(apperrors.ErrInvalidTransition, "appointment was updated concurrently")
		}
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	s.log.Info().
		Str("appointment_id", appt.ID).
		Str("action", string(action)).
		Str("from", string(appt.Status)).
		Str("to", string(target)).
		Msg("appointment status updated")

	appt.Status = target
	return appt, nil
}

// AppointmentDetails is the single-encounter view returned to the owning
// doctor.
type AppointmentDetails struct {
	Appointment models.Appointment   `json:"appointment"`
	Patient     models.UserSanitized `json:"patient"`
	PatientInfo models.Patient       `json:"patientInfo"`
}

// Details returns one appointment with its patient, ownership-checked.
func (s *AppointmentService) Details(ctx context.Context, appointmentID, doctorUserID string) (*AppointmentDetails, error) {
	appt, _, err := s.guard.Authorize(ctx, appointmentID, doctorUserID)
	if err != nil {
		return nil, err
	}

	patient, err := s.patients.FindAliveByID(ctx, appt.PatientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrapf(apperrors.ErrNotFound, "patient %s", appt.PatientID)
		}
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	return &AppointmentDetails{
		Appointment: *appt,
		Patient:     patient.User.Sanitize(),
		PatientInfo: *patient,
	}, nil
}

// CheckupView is everything the doctor sees while documenting an encounter:
// the appointment, the vitals recorded so far, prescriptions already issued
// and lab tests attached to it.
type CheckupView struct {
	Appointment   models.Appointment      `json:"appointment"`
	Patient       models.UserSanitized    `json:"patient"`
	Vitals        []models.VitalsSnapshot `json:"vitals"`
	Prescriptions []models.Prescription   `json:"prescriptions"`
	LabTests      []models.LabTest        `json:"labTests"`
}

// Checkup builds the encounter documentation view, ownership-checked.
func (s *AppointmentService) Checkup(ctx context.Context, appointmentID, doctorUserID string) (*CheckupView, error) {
	appt, _, err := s.guard.Authorize(ctx, appointmentID, doctorUserID)
	if err != nil {
		return nil, err
	}

	patient, err := s.patients.FindAliveByID(ctx, appt.PatientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrapf(apperrors.ErrNotFound, "patient %s", appt.PatientID)
		}
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	vitals, err := s.clinical.ListVitalsByAppointment(ctx, appt.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	prescriptions, err := s.clinical.ListPrescriptionsByAppointment(ctx, appt.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	labs, err := s.labs.ListByAppointment(ctx, appt.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	return &CheckupView{
		Appointment:   *appt,
		Patient:       patient.User.Sanitize(),
		Vitals:        vitals,
		Prescriptions: prescriptions,
		LabTests:      labs,
	}, nil
}

// TodaysAppointments lists the doctor's appointments scheduled today,
// ascending by time.
func (s *AppointmentService) TodaysAppointments(ctx context.Context, doctorUserID string) ([]models.Appointment, error) {
	doctor, err := s.doctorByUser(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	start := startOfDay(time.Now())
	appts, err := s.appointments.ListByDoctorBetween(ctx, doctor.ID, start, start.Add(24*time.Hour))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	return appts, nil
}

// BookingInput is the payload for booking a new appointment.
type BookingInput struct {
	DoctorID    string
	PatientID   string
	ScheduledAt time.Time
	Type        models.AppointmentType
	Reason      string
	Notes       string
}

// Book creates a new pending appointment. Booking is driven by a patient
// (for themselves) or an admin; callerUserID/callerRole carry the
// authenticated identity.
func (s *AppointmentService) Book(ctx context.Context, in BookingInput, callerUserID string, callerRole models.Role) (*models.Appointment, error) {
	if callerUserID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	patient, err := s.patients.FindAliveByID(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrapf(apperrors.ErrNotFound, "patient %s", in.PatientID)
		}
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	if callerRole == models.RolePatient && patient.UserID != callerUserID {
		return nil, apperrors.Wrapf(apperrors.ErrForbidden, "patients can only book for themselves")
	}

	if _, err := s.doctors.FindByID(ctx, in.DoctorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrapf(apperrors.ErrNotFound, "doctor %s", in.DoctorID)
		}
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	if in.ScheduledAt.Before(time.Now()) {
		return nil, apperrors.Wrapf(apperrors.ErrValidation, "appointment time must be in the future")
	}

	apptType := in.Type
	if apptType == "" {
		apptType = models.TypeInPerson
	}
	status := models.StatusPending
	if callerRole == models.RoleAdmin {
		// Front-desk bookings go straight onto the schedule.
		status = models.StatusScheduled
	}

	appt := &models.Appointment{
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		ScheduledAt: in.ScheduledAt,
		Status:      status,
		Type:        apptType,
		Reason:      in.Reason,
		Notes:       in.Notes,
		IsActive:    true,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	s.log.Info().Str("appointment_id", appt.ID).Str("doctor_id", appt.DoctorID).Msg("appointment booked")
	return appt, nil
}

// Cancel lets a patient cancel their own appointment while it is still
// non-terminal. It reuses the lifecycle table and the CAS write.
func (s *AppointmentService) Cancel(ctx context.Context, appointmentID, patientUserID string) (*models.Appointment, error) {
	if patientUserID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	appt, err := s.appointments.FindAliveByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	patient, err := s.patients.FindAliveByID(ctx, appt.PatientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	if patient.UserID != patientUserID {
		return nil, apperrors.ErrForbidden
	}

	if err := lifecycle.Check(lifecycle.ActionCancel, appt.Status); err != nil {
		return nil, err
	}
	if err := s.appointments.UpdateStatusFrom(ctx, appt.ID, appt.Status, models.StatusCancelled); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, apperrors.Wrapf(apperrors.ErrInvalidTransition, "appointment was updated concurrently")
		}
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	appt.Status = models.StatusCancelled
	return appt, nil
}

// ListForPatient returns the appointments of the calling patient.
func (s *AppointmentService) ListForPatient(ctx context.Context, patientUserID string) ([]models.Appointment, error) {
	if patientUserID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	patient, err := s.patients.FindByUserID(ctx, patientUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	appts, err := s.appointments.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	return appts, nil
}

func (s *AppointmentService) doctorByUser(ctx context.Context, doctorUserID string) (*models.Doctor, error) {
	if doctorUserID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	doctor, err := s.doctors.FindByUserID(ctx, doctorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	return doctor, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
