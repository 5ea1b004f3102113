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

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	logger          *zap.Logger
}

func NewFeedbackHandler(feedbackService *service.FeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService, logger: logger}
}

// ListFeedback handles GET /feedback?projectId=&clientId=
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	projectID, ok := optionalIntQuery(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid projectId"})
		return
	}
	clientID, ok := optionalIntQuery(c, "clientId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid clientId"})
		return
	}

	feedback, err := h.feedbackService.List(c.Request.Context(), projectID, clientID)
	if err != nil {
		h.logger.Error("Failed to list feedback", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch feedback"})
		return
	}
	if feedback == nil {
		feedback = []model.Feedback{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": feedback})
}

type submitFeedbackRequest struct {
	ProjectID           int    `json:"project_id" binding:"required"`
	SatisfactionRating  int    `json:"satisfaction_rating" binding:"required,min=1,max=5"`
	CommunicationRating int    `json:"communication_rating" binding:"required,min=1,max=5"`
	Comments            string `json:"comments"`
	FlagIssue           bool   `json:"flag_issue"`
}

// SubmitFeedback handles POST /feedback. The client is the
// authenticated user.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	var req submitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	feedback, err := h.feedbackService.Submit(c.Request.Context(), service.SubmitFeedbackInput{
		ProjectID:           req.ProjectID,
		ClientID:            userID.(int),
		SatisfactionRating:  req.SatisfactionRating,
		CommunicationRating: req.CommunicationRating,
		Comments:            req.Comments,
		FlagIssue:           req.FlagIssue,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateWeek) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Feedback already submitted for this week"})
			return
		}
		h.logger.Error("Failed to submit feedback", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to submit feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Feedback submitted successfully",
		"feedback": feedback,
	})
}
