// Package lifecycle fixes the legal appointment status transitions. Each
// doctor-facing action maps to exactly one target status; there is no raw
// "set status to X" path, so illegal jumps like pending → completed cannot
// be expressed at all.
package lifecycle

import (
	"hospital-app-server/internal/apperrors"
	"hospital-app-server/internal/models"
)

// Action is a named doctor- or patient-facing lifecycle operation.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionStart    Action = "start"
	ActionEnd      Action = "end"
	ActionComplete Action = "complete"
	ActionReject   Action = "reject"
	ActionFollowUp Action = "followup"
	ActionCancel   Action = "cancel"
)

// anyNonTerminal marks transitions legal from every non-terminal status.
var anyNonTerminal = []models.AppointmentStatus{
	models.StatusPending,
	models.StatusScheduled,
	models.StatusAccepted,
	models.StatusInProgress,
	models.StatusPrescriptionPending,
}

type rule struct {
	target models.AppointmentStatus
	from   []models.AppointmentStatus
}

var rules = map[Action]rule{
	ActionAccept:   {models.StatusAccepted, []models.AppointmentStatus{models.StatusPending, models.StatusScheduled}},
	ActionStart:    {models.StatusInProgress, []models.AppointmentStatus{models.StatusScheduled, models.StatusAccepted}},
	ActionEnd:      {models.StatusPrescriptionPending, []models.AppointmentStatus{models.StatusInProgress}},
	ActionComplete: {models.StatusCompleted, []models.AppointmentStatus{models.StatusInProgress, models.StatusPrescriptionPending}},
	ActionReject:   {models.StatusRejected, anyNonTerminal},
	ActionCancel:   {models.StatusCancelled, anyNonTerminal},

	// followup does not move the status machine; it flips the
	// FollowUpRequired flag on an encounter that is being or has been seen.
	ActionFollowUp: {"", []models.AppointmentStatus{models.StatusInProgress, models.StatusCompleted}},
}

// Known reports whether the action name is one the engine understands.
func Known(a Action) bool {
	_, ok := rules[a]
	return ok
}

// IsFlagOnly reports whether the action leaves the status untouched and
// only sets the follow-up flag.
func IsFlagOnly(a Action) bool {
	return a == ActionFollowUp
}

// Target returns the status the action moves an appointment to. Undefined
// for flag-only actions.
func Target(a Action) models.AppointmentStatus {
	return rules[a].target
}

// Check validates that the action is legal from the current status. It
// returns ErrInvalidTransition otherwise, and never touches any record.
func Check(a Action, current models.AppointmentStatus) error {
	r, ok := rules[a]
	if !ok {
		return apperrors.Wrapf(apperrors.ErrValidation, "unknown action %q", a)
	}
	for _, s := range r.from {
		if s == current {
			return nil
		}
	}
	return apperrors.Wrapf(apperrors.ErrInvalidTransition, "action %q is not allowed while status is %q", a, current)
}
