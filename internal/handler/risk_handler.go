package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectpulse/internal/model"
	"projectpulse/internal/service"
)

type RiskHandler struct {
	riskService *service.RiskService
	logger      *zap.Logger
}

func NewRiskHandler(riskService *service.RiskService, logger *zap.Logger) *RiskHandler {
	return &RiskHandler{riskService: riskService, logger: logger}
}

// ListRisks handles GET /risks?projectId=&status=&severity=
func (h *RiskHandler) ListRisks(c *gin.Context) {
	projectID, ok := optionalIntQuery(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid projectId"})
		return
	}

	risks, err := h.riskService.List(c.Request.Context(), projectID, c.Query("status"), c.Query("severity"))
	if err != nil {
		h.logger.Error("Failed to list risks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch risks"})
		return
	}
	if risks == nil {
		risks = []model.Risk{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "risks": risks})
}

type reportRiskRequest struct {
	ProjectID      int        `json:"project_id" binding:"required"`
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description" binding:"required"`
	Severity       string     `json:"severity" binding:"omitempty,oneof=low medium high"`
	Impact         string     `json:"impact" binding:"omitempty,oneof=low medium high critical"`
	MitigationPlan string     `json:"mitigation_plan"`
	AssignedToID   *int       `json:"assigned_to_id"`
	DueDate        *time.Time `json:"due_date"`
}

// ReportRisk handles POST /risks. The reporter is the authenticated
// user.
func (h *RiskHandler) ReportRisk(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	var req reportRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	risk, err := h.riskService.Report(c.Request.Context(), service.ReportRiskInput{
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Description:    req.Description,
		Severity:       req.Severity,
		Impact:         req.Impact,
		MitigationPlan: req.MitigationPlan,
		ReportedByID:   userID.(int),
		AssignedToID:   req.AssignedToID,
		DueDate:        req.DueDate,
	})
	if err != nil {
		h.logger.Error("Failed to report risk", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create risk"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Risk reported successfully",
		"risk":    risk,
	})
}
