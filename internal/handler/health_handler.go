package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectpulse/internal/repository"
	"projectpulse/internal/service/health"
)

// HealthScorer is what the handler needs from the scoring engine.
// Narrowed so tests can fake it.
type HealthScorer interface {
	Recompute(ctx context.Context, projectID int) (health.Result, error)
	RecomputeAll(ctx context.Context) ([]health.BatchResult, error)
}

type HealthHandler struct {
	scorer HealthScorer
	logger *zap.Logger
}

func NewHealthHandler(scorer HealthScorer, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{scorer: scorer, logger: logger}
}

// GetHealth handles GET /health?projectId=<id>: recomputes and persists
// one project's score and returns the sub-score breakdown.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	projectIDRaw := c.Query("projectId")
	if projectIDRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "projectId is required"})
		return
	}

	projectID, err := strconv.Atoi(projectIDRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid projectId"})
		return
	}

	result, err := h.scorer.Recompute(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
			return
		}
		h.logger.Error("Health score computation failed",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to calculate health score"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"healthScore": result.Score,
		"status":      result.Status,
		"breakdown":   result.Breakdown,
	})
}

// RecomputeAll handles POST /health: rescoring every project. One
// project's failure shows up in its results entry, not as a request
// failure.
func (h *HealthHandler) RecomputeAll(c *gin.Context) {
	results, err := h.scorer.RecomputeAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Batch health recompute failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update health scores"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Updated health scores for %d projects", len(results)),
		"results": results,
	})
}
