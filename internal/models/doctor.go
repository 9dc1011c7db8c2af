package models

// Doctor represents a doctor's domain profile, linked to a login user.
// The lifecycle engine resolves ownership through UserID, so the link
// must always point at exactly one user.
type Doctor struct {
	BaseModel
	UserID          string  `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Specialization  string  `gorm:"size:100" json:"specialization"`
	Qualification   string  `gorm:"size:255" json:"qualification"`
	ConsultationFee float64 `json:"consultationFee"`

	// Schedule window is display-only availability info; the lifecycle
	// engine never enforces it.
	AvailableDays string `gorm:"size:100" json:"availableDays"` // e.g. "Mon,Tue,Wed"
	StartTime     string `gorm:"size:10" json:"startTime"`      // e.g. "09:00"
	EndTime       string `gorm:"size:10" json:"endTime"`        // e.g. "17:00"
	IsActive      bool   `gorm:"default:true" json:"isActive"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
