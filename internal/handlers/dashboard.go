package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hospital-app-server/internal/middleware"
	"hospital-app-server/internal/service"
	"hospital-app-server/internal/utils"
)

// DashboardHandler exposes the doctor's dashboard and the patient history
// read views.
type DashboardHandler struct {
	Dashboard *service.DashboardService
	History   *service.HistoryService
	Log       zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService, history *service.HistoryService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard, History: history, Log: log}
}

// GetDoctorDashboard returns the calling doctor's dashboard projection.
func (h *DashboardHandler) GetDoctorDashboard(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	view, err := h.Dashboard.BuildDoctorDashboard(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Dashboard fetched successfully", view)
}

// GetPatientMedicalHistory returns a patient's aggregated history for a
// doctor who has treated them.
func (h *DashboardHandler) GetPatientMedicalHistory(c *gin.Context) {
	patientID := c.Param("patientId")
	if _, err := uuid.Parse(patientID); err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	view, err := h.History.BuildPatientHistory(c.Request.Context(), patientID, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Medical history fetched successfully", view)
}

func (h *DashboardHandler) fail(c *gin.Context, err error) {
	h.Log.Error().Err(err).Str("path", c.FullPath()).Msg("dashboard request failed")
	utils.FromError(c, err)
}
