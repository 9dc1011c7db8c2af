package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"hospital-app-server/internal/apperrors"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/repository"
)

// LabService drives the lab-side of the lab test state machine: the
// worklist, sample collection and report filing. Doctors only ever create
// requests (through ClinicalService).
type LabService struct {
	labs repository.LabRepository
	log  zerolog.Logger
}

// NewLabService wires a LabService.
func NewLabService(labs repository.LabRepository, log zerolog.Logger) *LabService {
	return &LabService{labs: labs, log: log}
}

// Worklist lists open lab requests, oldest first.
func (s *LabService) Worklist(ctx context.Context) ([]models.LabTest, error) {
	rows, err := s.labs.ListOpen(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	return rows, nil
}

// CollectSample moves a requested test to sample_collected.
func (s *LabService) CollectSample(ctx context.Context, testID string) error {
	err := s.labs.UpdateStatusFrom(ctx, testID, models.LabStatusRequested, models.LabStatusSampleCollected)
	if errors.Is(err, repository.ErrStaleStatus) {
		return apperrors.Wrapf(apperrors.ErrInvalidTransition, "lab test is not awaiting collection")
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	return nil
}

// FileReport records the result and moves the test to reported.
func (s *LabService) FileReport(ctx context.Context, testID, result, labUserID string) error {
	if strings.TrimSpace(result) == "" {
		return apperrors.Wrapf(apperrors.ErrValidation, "result is required")
	}
	err := s.labs.FileReport(ctx, testID, result, labUserID)
	if errors.Is(err, repository.ErrStaleStatus) {
		return apperrors.Wrapf(apperrors.ErrInvalidTransition, "lab test is not open")
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrUnexpected, err)
	}
	s.log.Info().Str("lab_test_id", testID).Msg("lab report filed")
	return nil
}
