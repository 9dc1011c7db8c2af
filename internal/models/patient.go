package models

import "time"

// Patient represents a patient's domain profile, linked to a login user.
type Patient struct {
	BaseModel
	UserID      string     `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Gender      string     `gorm:"size:10" json:"gender"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	BloodGroup  string     `gorm:"size:5" json:"bloodGroup"`
	Address     string     `gorm:"size:255" json:"address"`

	EmergencyContactName  string `gorm:"size:100" json:"emergencyContactName"`
	EmergencyContactPhone string `gorm:"size:20" json:"emergencyContactPhone"`
	IsActive              bool   `gorm:"default:true" json:"isActive"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// ChronicDisease is a patient-scoped condition row consumed by history
// aggregation and mutated through plain CRUD.
type ChronicDisease struct {
	BaseModel
	PatientID   string     `gorm:"size:36;index;not null" json:"patientId"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	DiagnosedAt *time.Time `json:"diagnosedAt,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes"`
}

// Allergy is a patient-scoped allergy row consumed by history aggregation.
type Allergy struct {
	BaseModel
	PatientID string `gorm:"size:36;index;not null" json:"patientId"`
	Allergen  string `gorm:"size:100;not null" json:"allergen"`
	Reaction  string `gorm:"size:255" json:"reaction"`
	Severity  string `gorm:"size:20" json:"severity"` // mild, moderate, severe
}
