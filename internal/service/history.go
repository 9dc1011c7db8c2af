package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"hospital-app-server/internal/apperrors"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/repository"
)

// HistoryService projects a patient's full encounter history for doctor
// consumption. It is a pure read side; nothing here mutates.
type HistoryService struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	patients     repository.PatientRepository
	clinical     repository.ClinicalRepository
	labs         repository.LabRepository
	log          zerolog.Logger
}

// NewHistoryService wires a HistoryService.
func NewHistoryService(
	appointments repository.AppointmentRepository,
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	clinical repository.ClinicalRepository,
	labs repository.LabRepository,
	log zerolog.Logger,
) *HistoryService {
	return &HistoryService{
		appointments: appointments,
		doctors:      doctors,
		patients:     patients,
		clinical:     clinical,
		labs:         labs,
		log:          log,
	}
}

// Visit is one row of the chronological visit list.
type Visit struct {
	AppointmentID string                   `json:"appointmentId"`
	ScheduledAt   string                   `json:"scheduledAt"`
	Status        models.AppointmentStatus `json:"status"`
	Reason        string                   `json:"reason"`
	FollowUp      bool                     `json:"followUp"`
}

// PrescriptionSummary flattens a prescription's items to display strings.
type PrescriptionSummary struct {
	PrescriptionID string   `json:"prescriptionId"`
	IssuedAt       string   `json:"issuedAt"`
	Notes          string   `json:"notes"`
	Medications    []string `json:"medications"`
}

// HistoryView is the aggregated medical history of one patient.
type HistoryView struct {
	Patient         models.UserSanitized    `json:"patient"`
	PatientInfo     models.Patient          `json:"patientInfo"`
	CurrentVitals   *models.VitalsSnapshot  `json:"currentVitals,omitempty"`
	Visits          []Visit                 `json:"visits"`
	Prescriptions   []PrescriptionSummary   `json:"prescriptions"`
	LabTests        []models.LabTest        `json:"labTests"`
	ChronicDiseases []models.ChronicDisease `json:"chronicDiseases"`
	Allergies       []models.Allergy        `json:"allergies"`
}

// BuildPatientHistory aggregates the patient's record for the calling
// doctor. Access requires that the doctor has at least one appointment with
// the patient — viewing strangers' histories is forbidden by policy, not by
// accident.
func (s *HistoryService) BuildPatientHistory(ctx context.Context, patientID, doctorUserID string) (*HistoryView, error) {
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

	patient, err := s.patients.FindAliveByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrapf(apperrors.ErrNotFound, "patient %s", patientID)
		}
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	n, err := s.appointments.CountByDoctorAndPatient(ctx, doctor.ID, patient.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	if n == 0 {
		return nil, apperrors.Wrapf(apperrors.ErrForbidden, "no treatment relationship with patient")
	}

	// Visits include soft-deleted and terminal encounters: history is
	// never pruned.
	appts, err := s.appointments.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	visits := make([]Visit, 0, len(appts))
	for _, a := range appts {
		visits = append(visits, Visit{
			AppointmentID: a.ID,
			ScheduledAt:   a.ScheduledAt.Format("2006-01-02 15:04"),
			Status:        a.Status,
			Reason:        a.Reason,
			FollowUp:      a.FollowUpRequired,
		})
	}

	vitals, err := s.clinical.LatestVitalsByPatient(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	prescriptions, err := s.clinical.ListPrescriptionsByPatient(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	summaries := make([]PrescriptionSummary, 0, len(prescriptions))
	for _, p := range prescriptions {
		lines := make([]string, 0, len(p.Items))
		for _, item := range p.Items {
			lines = append(lines, item.DisplayLine())
		}
		summaries = append(summaries, PrescriptionSummary{
			PrescriptionID: p.ID,
			IssuedAt:       p.CreatedAt.Format("2006-01-02"),
			Notes:          p.Notes,
			Medications:    lines,
		})
	}

	labs, err := s.labs.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	chronic, err := s.patients.ListChronicDiseases(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	allergies, err := s.patients.ListAllergies(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	return &HistoryView{
		Patient:         patient.User.Sanitize(),
		PatientInfo:     *patient,
		CurrentVitals:   vitals,
		Visits:          visits,
		Prescriptions:   summaries,
		LabTests:        labs,
		ChronicDiseases: chronic,
		Allergies:       allergies,
	}, nil
}
