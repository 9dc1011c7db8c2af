package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hospital-app-server/internal/middleware"
	"hospital-app-server/internal/service"
	"hospital-app-server/internal/utils"
)

// CheckupHandler exposes the encounter documentation operations: the
// checkup view, vitals, prescriptions and lab requests.
type CheckupHandler struct {
	Appointments *service.AppointmentService
	Clinical     *service.ClinicalService
	Log          zerolog.Logger
}

// NewCheckupHandler creates a new CheckupHandler.
func NewCheckupHandler(appointments *service.AppointmentService, clinical *service.ClinicalService, log zerolog.Logger) *CheckupHandler {
	return &CheckupHandler{Appointments: appointments, Clinical: clinical, Log: log}
}

// GetCheckup returns the documentation view for an encounter.
func (h *CheckupHandler) GetCheckup(c *gin.Context) {
	appointmentID := c.Param("id")
	if _, err := uuid.Parse(appointmentID); err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	view, err := h.Appointments.Checkup(c.Request.Context(), appointmentID, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Checkup fetched successfully", view)
}

// UpdateVitalsRequest represents a vitals snapshot payload.
type UpdateVitalsRequest struct {
	HeightCm        float64 `json:"heightCm" binding:"omitempty,gt=0"`
	WeightKg        float64 `json:"weightKg" binding:"omitempty,gt=0"`
	Pulse           int     `json:"pulse" binding:"omitempty,gt=0"`
	BloodPressure   string  `json:"bloodPressure"`
	TemperatureC    float64 `json:"temperatureC"`
	IsDiabetic      bool    `json:"isDiabetic"`
	HasHypertension bool    `json:"hasHypertension"`
	Readings        string  `json:"readings"`
}

// UpdateVitals appends a vitals snapshot to the encounter.
func (h *CheckupHandler) UpdateVitals(c *gin.Context) {
	appointmentID := c.Param("id")
	if _, err := uuid.Parse(appointmentID); err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}
	var req UpdateVitalsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	snapshot, err := h.Clinical.RecordVitals(c.Request.Context(), appointmentID, service.VitalsInput{
		HeightCm:        req.HeightCm,
		WeightKg:        req.WeightKg,
		Pulse:           req.Pulse,
		BloodPressure:   req.BloodPressure,
		TemperatureC:    req.TemperatureC,
		IsDiabetic:      req.IsDiabetic,
		HasHypertension: req.HasHypertension,
		Readings:        req.Readings,
	}, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Created(c, "Vitals recorded successfully", snapshot)
}

// PrescriptionItemRequest is one medication line.
type PrescriptionItemRequest struct {
	Medicine     string `json:"medicine" binding:"required"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// CreatePrescriptionRequest represents a new prescription payload.
type CreatePrescriptionRequest struct {
	Items []PrescriptionItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes string                    `json:"notes"`
}

// CreatePrescription issues a prescription for the encounter.
func (h *CheckupHandler) CreatePrescription(c *gin.Context) {
	appointmentID := c.Param("id")
	if _, err := uuid.Parse(appointmentID); err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}
	var req CreatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	items := make([]service.PrescriptionItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.PrescriptionItemInput{
			Medicine:     it.Medicine,
			Dosage:       it.Dosage,
			Frequency:    it.Frequency,
			Duration:     it.Duration,
			Instructions: it.Instructions,
		})
	}

	prescription, err := h.Clinical.CreatePrescription(c.Request.Context(), appointmentID, service.PrescriptionInput{
		Items: items,
		Notes: req.Notes,
	}, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Created(c, "Prescription created successfully", prescription)
}

// RequestLabTestRequest represents a lab request payload.
type RequestLabTestRequest struct {
	TestName string `json:"testName" binding:"required"`
}

// RequestLabTest attaches a lab request to the encounter.
func (h *CheckupHandler) RequestLabTest(c *gin.Context) {
	appointmentID := c.Param("id")
	if _, err := uuid.Parse(appointmentID); err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}
	var req RequestLabTestRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	test, err := h.Clinical.RequestLabTest(c.Request.Context(), appointmentID, service.LabRequestInput{TestName: req.TestName}, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Created(c, "Lab test requested successfully", test)
}

func (h *CheckupHandler) fail(c *gin.Context, err error) {
	h.Log.Error().Err(err).Str("path", c.FullPath()).Msg("checkup request failed")
	utils.FromError(c, err)
}
