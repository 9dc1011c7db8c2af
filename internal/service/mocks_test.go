package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"hospital-app-server/internal/models"
)

// MockAppointmentRepo is a mock implementation of repository.AppointmentRepository.
type MockAppointmentRepo struct {
	mock.Mock
}

func (m *MockAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentRepo) FindAliveByID(ctx context.Context, id string) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) FindAnyByID(ctx context.Context, id string) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) UpdateStatusFrom(ctx context.Context, id string, from, to models.AppointmentStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockAppointmentRepo) SetFollowUp(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) ListByDoctorBetween(ctx context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) CountByDoctorAndPatient(ctx context.Context, doctorID, patientID string) (int64, error) {
	args := m.Called(ctx, doctorID, patientID)
	return args.Get(0).(int64), args.Error(1)
}

// MockDoctorRepo is a mock implementation of repository.DoctorRepository.
type MockDoctorRepo struct {
	mock.Mock
}

func (m *MockDoctorRepo) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepo) FindByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepo) ListActive(ctx context.Context) ([]models.Doctor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Doctor), args.Error(1)
}

// MockPatientRepo is a mock implementation of repository.PatientRepository.
type MockPatientRepo struct {
	mock.Mock
}

func (m *MockPatientRepo) FindAliveByID(ctx context.Context, id string) (*models.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockPatientRepo) FindByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockPatientRepo) ListChronicDiseases(ctx context.Context, patientID string) ([]models.ChronicDisease, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChronicDisease), args.Error(1)
}

func (m *MockPatientRepo) ListAllergies(ctx context.Context, patientID string) ([]models.Allergy, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Allergy), args.Error(1)
}

// MockClinicalRepo is a mock implementation of repository.ClinicalRepository.
type MockClinicalRepo struct {
	mock.Mock
}

func (m *MockClinicalRepo) InsertVitals(ctx context.Context, v *models.VitalsSnapshot) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockClinicalRepo) ListVitalsByAppointment(ctx context.Context, appointmentID string) ([]models.VitalsSnapshot, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VitalsSnapshot), args.Error(1)
}

func (m *MockClinicalRepo) LatestVitalsByPatient(ctx context.Context, patientID string) (*models.VitalsSnapshot, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VitalsSnapshot), args.Error(1)
}

func (m *MockClinicalRepo) CreatePrescription(ctx context.Context, p *models.Prescription) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockClinicalRepo) ListPrescriptionsByAppointment(ctx context.Context, appointmentID string) ([]models.Prescription, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Prescription), args.Error(1)
}

func (m *MockClinicalRepo) ListPrescriptionsByPatient(ctx context.Context, patientID string) ([]models.Prescription, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Prescription), args.Error(1)
}

func (m *MockClinicalRepo) CountPrescriptionsByDoctor(ctx context.Context, doctorID string) (int64, error) {
	args := m.Called(ctx, doctorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLabRepo is a mock implementation of repository.LabRepository.
type MockLabRepo struct {
	mock.Mock
}

func (m *MockLabRepo) Create(ctx context.Context, t *models.LabTest) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockLabRepo) FindByID(ctx context.Context, id string) (*models.LabTest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabTest), args.Error(1)
}

func (m *MockLabRepo) ListByPatient(ctx context.Context, patientID string) ([]models.LabTest, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LabTest), args.Error(1)
}

func (m *MockLabRepo) ListByAppointment(ctx context.Context, appointmentID string) ([]models.LabTest, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LabTest), args.Error(1)
}

func (m *MockLabRepo) ListOpen(ctx context.Context) ([]models.LabTest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LabTest), args.Error(1)
}

func (m *MockLabRepo) UpdateStatusFrom(ctx context.Context, id string, from, to models.LabTestStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockLabRepo) FileReport(ctx context.Context, id, result, reportedBy string) error {
	args := m.Called(ctx, id, result, reportedBy)
	return args.Error(0)
}
