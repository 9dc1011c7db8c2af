package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hospital-app-server/internal/middleware"
	"hospital-app-server/internal/service"
	"hospital-app-server/internal/utils"
)

// LabHandler exposes the lab staff worklist and report filing.
type LabHandler struct {
	Lab *service.LabService
	Log zerolog.Logger
}

// NewLabHandler creates a new LabHandler.
func NewLabHandler(lab *service.LabService, log zerolog.Logger) *LabHandler {
	return &LabHandler{Lab: lab, Log: log}
}

// GetWorklist lists open lab requests.
func (h *LabHandler) GetWorklist(c *gin.Context) {
	rows, err := h.Lab.Worklist(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Worklist fetched successfully", rows)
}

// CollectSample marks a lab test's sample as collected.
func (h *LabHandler) CollectSample(c *gin.Context) {
	testID := c.Param("id")
	if _, err := uuid.Parse(testID); err != nil {
		utils.BadRequest(c, "Invalid Lab Test ID format")
		return
	}
	if err := h.Lab.CollectSample(c.Request.Context(), testID); err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Sample collected", nil)
}

// FileReportRequest represents the report payload.
type FileReportRequest struct {
	Result string `json:"result" binding:"required"`
}

// FileReport records a lab result and closes the request.
func (h *LabHandler) FileReport(c *gin.Context) {
	testID := c.Param("id")
	if _, err := uuid.Parse(testID); err != nil {
		utils.BadRequest(c, "Invalid Lab Test ID format")
		return
	}
	var req FileReportRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.Lab.FileReport(c.Request.Context(), testID, req.Result, userID); err != nil {
		h.fail(c, err)
		return
	}
	utils.Success(c, "Report filed successfully", nil)
}

func (h *LabHandler) fail(c *gin.Context, err error) {
	h.Log.Error().Err(err).Str("path", c.FullPath()).Msg("lab request failed")
	utils.FromError(c, err)
}
