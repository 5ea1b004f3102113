package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectpulse/internal/model"
)

type FeedBuilder interface {
	BuildFeed(ctx context.Context, projectID *int, limit int) ([]model.ActivityEntry, error)
}

type ActivityHandler struct {
	feed   FeedBuilder
	logger *zap.Logger
}

func NewActivityHandler(feed FeedBuilder, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{feed: feed, logger: logger}
}

// GetActivity handles GET /activity?projectId=<optional>&limit=<default 20>
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	projectID, ok := optionalIntQuery(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid projectId"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid limit"})
			return
		}
		limit = parsed
	}

	activities, err := h.feed.BuildFeed(c.Request.Context(), projectID, limit)
	if err != nil {
		h.logger.Error("Activity feed build failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch activity"})
		return
	}
	if activities == nil {
		activities = []model.ActivityEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"activities": activities,
	})
}

// optionalIntQuery parses an optional integer query parameter. The
// second return is false when a value is present but malformed.
func optionalIntQuery(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}
