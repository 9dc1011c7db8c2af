package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"hospital-app-server/internal/apperrors"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/repository"
)

// DashboardService projects a doctor's appointments into the dashboard view.
type DashboardService struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	clinical     repository.ClinicalRepository
	log          zerolog.Logger
}

// NewDashboardService wires a DashboardService.
func NewDashboardService(appointments repository.AppointmentRepository, doctors repository.DoctorRepository, clinical repository.ClinicalRepository, log zerolog.Logger) *DashboardService {
	return &DashboardService{appointments: appointments, doctors: doctors, clinical: clinical, log: log}
}

// MonthlyVolume is one bar of the 12-month appointment trend.
type MonthlyVolume struct {
	Month string `json:"month"` // "2026-08"
	Count int    `json:"count"`
}

// DashboardView is the doctor's landing page projection.
type DashboardView struct {
	// Today's appointments ascending by time. Previous appointments are
	// also ascending, so the oldest encounter comes first.
	Today    []models.Appointment `json:"today"`
	Previous []models.Appointment `json:"previous"`

	TodayCount          int `json:"todayCount"`
	CompletedToday      int `json:"completedToday"`
	PendingToday        int `json:"pendingToday"`
	TotalPatientsSeen   int `json:"totalPatientsSeen"`
	PrescriptionsIssued int `json:"prescriptionsIssued"`
	AwaitingDocs        int `json:"awaitingDocumentation"`

	Volume []MonthlyVolume `json:"volume"`
}

// BuildDoctorDashboard reads every appointment owned by the doctor and
// partitions them into today / previous, plus the summary rollups.
func (s *DashboardService) BuildDoctorDashboard(ctx context.Context, doctorUserID string) (*DashboardView, error) {
	if doctorUserID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	doctor, err := s.doctors.FindByUserID(ctx, doctorUserID)
	if err != nil {
		return nil, apperrors.ErrForbidden
	}

	appts, err := s.appointments.ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}

	now := time.Now()
	view := buildDashboard(appts, now)

	issued, err := s.clinical.CountPrescriptionsByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	view.PrescriptionsIssued = int(issued)

	return view, nil
}

// buildDashboard is the pure projection over an already-loaded appointment
// set; split out so it can be tested without storage.
func buildDashboard(appts []models.Appointment, now time.Time) *DashboardView {
	dayStart := startOfDay(now)
	dayEnd := dayStart.Add(24 * time.Hour)
	yearAgo := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)

	view := &DashboardView{
		Today:    []models.Appointment{},
		Previous: []models.Appointment{},
	}

	patients := map[string]bool{}
	volume := map[string]int{}

	for _, a := range appts {
		switch {
		case !a.ScheduledAt.Before(dayStart) && a.ScheduledAt.Before(dayEnd):
			view.Today = append(view.Today, a)
			view.TodayCount++
			switch a.Status {
			case models.StatusCompleted:
				view.CompletedToday++
			case models.StatusPending, models.StatusScheduled:
				view.PendingToday++
			}
		case a.ScheduledAt.Before(dayStart):
			// Input is ordered ascending by time, so Previous stays
			// oldest-first without re-sorting.
			view.Previous = append(view.Previous, a)
		}

		if a.Status == models.StatusCompleted {
			patients[a.PatientID] = true
		}
		if a.Status == models.StatusPrescriptionPending {
			view.AwaitingDocs++
		}
		if !a.ScheduledAt.Before(yearAgo) && a.ScheduledAt.Before(dayEnd) {
			volume[a.ScheduledAt.Format("2006-01")]++
		}
	}

	view.TotalPatientsSeen = len(patients)

	// Emit all 12 buckets, zeroes included, oldest month first.
	for i := 0; i < 12; i++ {
		month := yearAgo.AddDate(0, i, 0).Format("2006-01")
		view.Volume = append(view.Volume, MonthlyVolume{Month: month, Count: volume[month]})
	}

	return view
}
