package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"hospital-app-server/internal/apperrors"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/repository"
)

// ClinicalService appends vitals snapshots, prescriptions and lab requests
// to an encounter. Writes are allowed only while the appointment is in an
// editable state (in progress or awaiting documentation); none of them move
// the appointment's own status.
type ClinicalService struct {
	guard    *OwnershipGuard
	clinical repository.ClinicalRepository
	labs     repository.LabRepository
	log      zerolog.Logger
}

// NewClinicalService wires a ClinicalService.
func NewClinicalService(guard *OwnershipGuard, clinical repository.ClinicalRepository, labs repository.LabRepository, log zerolog.Logger) *ClinicalService {
	return &ClinicalService{guard: guard, clinical: clinical, labs: labs, log: log}
}

// VitalsInput is the payload for recording a vitals snapshot.
type VitalsInput struct {
	HeightCm        float64
	WeightKg        float64
	Pulse           int
	BloodPressure   string
	TemperatureC    float64
	IsDiabetic      bool
	HasHypertension bool
	Readings        string
}

// RecordVitals appends a snapshot to the appointment's patient.
func (s *ClinicalService) RecordVitals(ctx context.Context, appointmentID string, in VitalsInput, doctorUserID string) (*models.VitalsSnapshot, error) {
	appt, _, err := s.guard.Authorize(ctx, appointmentID, doctorUserID)
	if err != nil {
		return nil, err
	}
	if !appt.Status.Editable() {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidTransition, "vitals can only be recorded during an active encounter (status is %q)", appt.Status)
	}

	snapshot := &models.VitalsSnapshot{
		AppointmentID:   appt.ID,
		PatientID:       appt.PatientID,
		HeightCm:        in.HeightCm,
		WeightKg:        in.WeightKg,
		Pulse:           in.Pulse,
		BloodPressure:   in.BloodPressure,
		TemperatureC:    in.TemperatureC,
		IsDiabetic:      in.IsDiabetic,
		HasHypertension: in.HasHypertension,
		Readings:        in.Readings,
	}
	if err := s.clinical.InsertVitals(ctx, snapshot); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	s.log.Info().Str("appointment_id", appt.ID).Msg("vitals recorded")
	return snapshot, nil
}

// PrescriptionItemInput is one medication line of a new prescription.
type PrescriptionItemInput struct {
	Medicine     string
	Dosage       string
	Frequency    string
	Duration     string
	Instructions string
}

// PrescriptionInput is the payload for issuing a prescription.
type PrescriptionInput struct {
	Items []PrescriptionItemInput
	Notes string
}

// CreatePrescription issues one prescription with all its items atomically:
// either the whole prescription is persisted or none of it is. Prescriptions
// are never edited afterwards; corrections are new prescriptions.
func (s *ClinicalService) CreatePrescription(ctx context.Context, appointmentID string, in PrescriptionInput, doctorUserID string) (*models.Prescription, error) {
	appt, doctor, err := s.guard.Authorize(ctx, appointmentID, doctorUserID)
	if err != nil {
		return nil, err
	}
	if !appt.Status.Editable() {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidTransition, "prescriptions can only be issued during an active encounter (status is %q)", appt.Status)
	}

	if len(in.Items) == 0 {
		return nil, apperrors.Wrapf(apperrors.ErrValidation, "prescription needs at least one item")
	}
	items := make([]models.PrescriptionItem, 0, len(in.Items))
	for i, item := range in.Items {
		if strings.TrimSpace(item.Medicine) == "" {
			return nil, apperrors.Wrapf(apperrors.ErrValidation, "item %d has no medicine name", i+1)
		}
		items = append(items, models.PrescriptionItem{
			Position:     i + 1,
			Medicine:     item.Medicine,
			Dosage:       item.Dosage,
			Frequency:    item.Frequency,
			Duration:     item.Duration,
			Instructions: item.Instructions,
		})
	}

	prescription := &models.Prescription{
		AppointmentID: appt.ID,
		DoctorID:      doctor.ID,
		PatientID:     appt.PatientID,
		Notes:         in.Notes,
		Items:         items,
	}
	if err := s.clinical.CreatePrescription(ctx, prescription); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	s.log.Info().Str("appointment_id", appt.ID).Int("items", len(items)).Msg("prescription issued")
	return prescription, nil
}

// LabRequestInput is the payload for attaching a lab request to an encounter.
type LabRequestInput struct {
	TestName string
}

// RequestLabTest attaches a lab request to the appointment. The request
// starts its own status machine at requested, independent of the
// appointment's lifecycle.
func (s *ClinicalService) RequestLabTest(ctx context.Context, appointmentID string, in LabRequestInput, doctorUserID string) (*models.LabTest, error) {
	appt, _, err := s.guard.Authorize(ctx, appointmentID, doctorUserID)
	if err != nil {
		return nil, err
	}
	if !appt.Status.Editable() {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidTransition, "lab tests can only be requested during an active encounter (status is %q)", appt.Status)
	}
	if strings.TrimSpace(in.TestName) == "" {
		return nil, apperrors.Wrapf(apperrors.ErrValidation, "test name is required")
	}

	test := &models.LabTest{
		PatientID:     appt.PatientID,
		AppointmentID: appt.ID,
		RequestedBy:   doctorUserID,
		TestName:      in.TestName,
		Status:        models.LabStatusRequested,
	}
	if err := s.labs.Create(ctx, test); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	return test, nil
}
