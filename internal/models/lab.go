package models

import "time"

// LabTestStatus is the lab request's own state machine. It shares nothing
// with the appointment lifecycle beyond the foreign key.
type LabTestStatus string

const (
	LabStatusRequested       LabTestStatus = "requested"
	LabStatusSampleCollected LabTestStatus = "sample_collected"
	LabStatusReported        LabTestStatus = "reported"
	LabStatusCancelled       LabTestStatus = "cancelled"
)

// LabTest is a lab request, optionally attached to an appointment, requested
// by a doctor or patient and fulfilled by lab staff. Report fields stay empty
// until the test is reported.
type LabTest struct {
	BaseModel
	PatientID     string        `gorm:"size:36;index;not null" json:"patientId"`
	AppointmentID string        `gorm:"size:36;index" json:"appointmentId,omitempty"`
	RequestedBy   string        `gorm:"size:36" json:"requestedBy"` // user id of requester
	TestName      string        `gorm:"size:100;not null" json:"testName"`
	Status        LabTestStatus `gorm:"size:20;default:'requested'" json:"status"`

	Result     string     `gorm:"type:text" json:"result,omitempty"`
	ReportedBy string     `gorm:"size:36" json:"reportedBy,omitempty"`
	ReportedAt *time.Time `json:"reportedAt,omitempty"`
}
