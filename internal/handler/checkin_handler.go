package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectpulse/internal/model"
	"projectpulse/internal/repository"
	"projectpulse/internal/service"
)

type CheckinHandler struct {
	checkinService *service.CheckinService
	logger         *zap.Logger
}

func NewCheckinHandler(checkinService *service.CheckinService, logger *zap.Logger) *CheckinHandler {
	return &CheckinHandler{checkinService: checkinService, logger: logger}
}

// ListCheckins handles GET /checkins?projectId=&employeeId=
func (h *CheckinHandler) ListCheckins(c *gin.Context) {
	projectID, ok := optionalIntQuery(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid projectId"})
		return
	}
	employeeID, ok := optionalIntQuery(c, "employeeId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid employeeId"})
		return
	}

	checkins, err := h.checkinService.List(c.Request.Context(), projectID, employeeID)
	if err != nil {
		h.logger.Error("Failed to list checkins", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch checkins"})
		return
	}
	if checkins == nil {
		checkins = []model.Checkin{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "checkins": checkins})
}

type submitCheckinRequest struct {
	ProjectID            int    `json:"project_id" binding:"required"`
	ProgressSummary      string `json:"progress_summary" binding:"required"`
	Blockers             string `json:"blockers"`
	ConfidenceLevel      int    `json:"confidence_level" binding:"required,min=1,max=5"`
	CompletionPercentage int    `json:"completion_percentage" binding:"min=0,max=100"`
}

// SubmitCheckin handles POST /checkins. The employee is the
// authenticated user.
func (h *CheckinHandler) SubmitCheckin(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	var req submitCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	checkin, err := h.checkinService.Submit(c.Request.Context(), service.SubmitCheckinInput{
		ProjectID:            req.ProjectID,
		EmployeeID:           userID.(int),
		ProgressSummary:      req.ProgressSummary,
		Blockers:             req.Blockers,
		ConfidenceLevel:      req.ConfidenceLevel,
		CompletionPercentage: req.CompletionPercentage,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateWeek) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Checkin already submitted for this week"})
			return
		}
		h.logger.Error("Failed to submit checkin", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to submit checkin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Checkin submitted successfully",
		"checkin": checkin,
	})
}
