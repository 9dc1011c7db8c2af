package models

// VitalsSnapshot is an append-only reading taken during an encounter. It
// belongs to exactly one appointment and one patient and is never updated
// after creation; corrections are new snapshots.
type VitalsSnapshot struct {
	BaseModel
	AppointmentID string `gorm:"size:36;index;not null" json:"appointmentId"`
	PatientID     string `gorm:"size:36;index;not null" json:"patientId"`

	HeightCm        float64 `json:"heightCm"`
	WeightKg        float64 `json:"weightKg"`
	Pulse           int     `json:"pulse"`
	BloodPressure   string  `gorm:"size:20" json:"bloodPressure"` // e.g. "120/80"
	TemperatureC    float64 `json:"temperatureC"`
	IsDiabetic      bool    `gorm:"default:false" json:"isDiabetic"`
	HasHypertension bool    `gorm:"default:false" json:"hasHypertension"`
	Readings        string  `gorm:"type:text" json:"readings"`
}

// Prescription is issued by a doctor for one appointment. Once created, a
// prescription and its items are immutable; corrections are issued as new
// prescriptions.
type Prescription struct {
	BaseModel
	AppointmentID string `gorm:"size:36;index;not null" json:"appointmentId"`
	DoctorID      string `gorm:"size:36;index;not null" json:"doctorId"`
	PatientID     string `gorm:"size:36;index;not null" json:"patientId"`
	Notes         string `gorm:"type:text" json:"notes"`

	Items []PrescriptionItem `gorm:"foreignKey:PrescriptionID" json:"items"`
}

// PrescriptionItem is a single medication line on a prescription.
type PrescriptionItem struct {
	BaseModel
	PrescriptionID string `gorm:"size:36;index;not null" json:"prescriptionId"`
	Position       int    `gorm:"not null" json:"position"`
	Medicine       string `gorm:"size:255;not null" json:"medicine"`
	Dosage         string `gorm:"size:50" json:"dosage"`    // e.g. "500mg"
	Frequency      string `gorm:"size:100" json:"frequency"` // e.g. "3x/day"
	Duration       string `gorm:"size:100" json:"duration"`  // e.g. "7 days"
	Instructions   string `gorm:"size:255" json:"instructions"`
}

// DisplayLine flattens an item into the single string the history view shows.
func (i PrescriptionItem) DisplayLine() string {
	line := i.Medicine
	if i.Dosage != "" {
		line += " " + i.Dosage
	}
	if i.Frequency != "" {
		line += ", " + i.Frequency
	}
	if i.Duration != "" {
		line += ", " + i.Duration
	}
	if i.Instructions != "" {
		line += " (" + i.Instructions + ")"
	}
	return line
}
