package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hospital-app-server/internal/lifecycle"
	"hospital-app-server/internal/middleware"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/service"
	"hospital-app-server/internal/utils"
)

// AppointmentHandler exposes the appointment lifecycle over HTTP.
type AppointmentHandler struct {
	Appointments *service.AppointmentService
	Log          zerolog.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments *service.AppointmentService, log zerolog.Logger) *AppointmentHandler {
	return &AppointmentHandler{Appointments: appointments, Log: log}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	DoctorID    string    `json:"doctorId" binding:"required,uuid"`
	PatientID   string    `json:"patientId" binding:"required,uuid"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Type        string    `json:"type" binding:"omitempty,oneof=in_person tele_consult"`
	Reason      string    `json:"reason" binding:"required"`
	Notes       string    `json:"notes"`
}

// CreateAppointment books a new appointment. Patients book for themselves;
// admins may book for any patient.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	appt, err := h.Appointments.Book(c.Request.Context(), service.BookingInput{
		DoctorID:    req.DoctorID,
		PatientID:   req.PatientID,
		ScheduledAt: req.ScheduledAt,
		Type:        models.AppointmentType(req.Type),
		Reason:      req.Reason,
		Notes:       req.Notes,
	}, userID, role)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Created(c, "Appointment created successfully", appt)
}

// UpdateAppointmentStatusRequest names the lifecycle action to apply. There
// is deliberately no way to submit a target status directly.
type UpdateAppointmentStatusRequest struct {
	Action string `json:"action" binding:"required,oneof=accept start end complete reject followup"`
}

// UpdateAppointmentStatus applies a doctor action to an appointment.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID := c.Param("id")
	if _, err := uuid.Parse(appointmentID); err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appt, err := h.Appointments.UpdateStatus(c.Request.Context(), appointmentID, lifecycle.Action(req.Action), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Appointment status updated successfully", appt)
}

// CancelAppointment lets a patient cancel their own appointment.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
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

	appt, err := h.Appointments.Cancel(c.Request.Context(), appointmentID, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Appointment cancelled", appt)
}

// GetAppointmentDetails returns one appointment for its owning doctor.
func (h *AppointmentHandler) GetAppointmentDetails(c *gin.Context) {
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

	details, err := h.Appointments.Details(c.Request.Context(), appointmentID, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Appointment fetched successfully", details)
}

// GetTodaysAppointments lists the calling doctor's appointments for today.
func (h *AppointmentHandler) GetTodaysAppointments(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	appts, err := h.Appointments.TodaysAppointments(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetMyAppointments lists the calling patient's appointments.
func (h *AppointmentHandler) GetMyAppointments(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	appts, err := h.Appointments.ListForPatient(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appts)
}

func (h *AppointmentHandler) fail(c *gin.Context, err error) {
	h.Log.Error().Err(err).Str("path", c.FullPath()).Msg("appointment request failed")
	utils.FromError(c, err)
}
