package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending             AppointmentStatus = "pending"
	StatusScheduled           AppointmentStatus = "scheduled"
	StatusAccepted            AppointmentStatus = "accepted"
	StatusInProgress          AppointmentStatus = "in_progress"
	StatusPrescriptionPending AppointmentStatus = "prescription_pending"
	StatusCompleted           AppointmentStatus = "completed"
	StatusRejected            AppointmentStatus = "rejected"
	StatusCancelled           AppointmentStatus = "cancelled"
)

// AppointmentType represents how the encounter is held
type AppointmentType string

const (
	TypeInPerson    AppointmentType = "in_person"
	TypeTeleConsult AppointmentType = "tele_consult"
)

// Appointment represents one scheduled clinical encounter between a doctor
// and a patient. DoctorID and PatientID reference the domain profiles, not
// login users; ownership checks must resolve Doctor.UserID.
type Appointment struct {
	BaseModel
	PatientID   string            `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID    string            `gorm:"size:36;index;not null" json:"doctorId"`
	ScheduledAt time.Time         `gorm:"index" json:"scheduledAt"`
	Status      AppointmentStatus `gorm:"size:30;default:'pending'" json:"status"`
	Type        AppointmentType   `gorm:"size:20;default:'in_person'" json:"type"`
	Reason      string            `gorm:"size:255" json:"reason"`
	Notes       string            `gorm:"type:text" json:"notes"`

	// Follow-up is a flag overlay, never a status value: marking an
	// encounter for follow-up must not overwrite a completed status.
	FollowUpRequired bool `gorm:"default:false" json:"followUpRequired"`

	// Appointments are never physically deleted; IsActive false hides the
	// row from live queries while history aggregation keeps seeing it.
	IsActive bool `gorm:"default:true" json:"isActive"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
}

// Terminal reports whether the status admits no further transition.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCancelled
}

// Editable reports whether clinical records (vitals, prescriptions, lab
// requests) may still be attached to an appointment in this status.
func (s AppointmentStatus) Editable() bool {
	return s == StatusInProgress || s == StatusPrescriptionPending
}
