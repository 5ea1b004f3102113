package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"projectpulse/internal/service/health"
	"projectpulse/internal/util"
	"projectpulse/pkg/mq"
)

// ProjectScorer is the slice of the health service the worker needs.
type ProjectScorer interface {
	Recompute(ctx context.Context, projectID int) (health.Result, error)
}

// RecomputeHandler refreshes a project's health score whenever a new
// checkin, feedback or risk lands. Redis-backed dedup keeps redelivered
// messages from recomputing twice.
type RecomputeHandler struct {
	scorer  ProjectScorer
	deduper *util.Deduper
	logger  *zap.Logger
}

func NewRecomputeHandler(scorer ProjectScorer, deduper *util.Deduper, logger *zap.Logger) *RecomputeHandler {
	return &RecomputeHandler{
		scorer:  scorer,
		deduper: deduper,
		logger:  logger,
	}
}

func (h *RecomputeHandler) HandleCheckinCreated(ctx context.Context, data json.RawMessage) error {
	var payload mq.CheckinCreatedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid checkin.created payload: %w", err)
	}

	if !h.deduper.AcquireOnce(ctx, "health.checkin", payload.CheckinID) {
		h.logger.Debug("Skipping duplicate checkin.created event",
			zap.Int("checkin_id", payload.CheckinID),
		)
		return nil
	}

	return h.recompute(ctx, payload.ProjectID, "checkin.created")
}

func (h *RecomputeHandler) HandleFeedbackCreated(ctx context.Context, data json.RawMessage) error {
	var payload mq.FeedbackCreatedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid feedback.created payload: %w", err)
	}

	if !h.deduper.AcquireOnce(ctx, "health.feedback", payload.FeedbackID) {
		h.logger.Debug("Skipping duplicate feedback.created event",
			zap.Int("feedback_id", payload.FeedbackID),
		)
		return nil
	}

	return h.recompute(ctx, payload.ProjectID, "feedback.created")
}

func (h *RecomputeHandler) HandleRiskCreated(ctx context.Context, data json.RawMessage) error {
	var payload mq.RiskCreatedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid risk.created payload: %w", err)
	}

	if !h.deduper.AcquireOnce(ctx, "health.risk", payload.RiskID) {
		h.logger.Debug("Skipping duplicate risk.created event",
			zap.Int("risk_id", payload.RiskID),
		)
		return nil
	}

	return h.recompute(ctx, payload.ProjectID, "risk.created")
}

func (h *RecomputeHandler) recompute(ctx context.Context, projectID int, trigger string) error {
	result, err := h.scorer.Recompute(ctx, projectID)
	if err != nil {
		return fmt.Errorf("recompute project %d after %s: %w", projectID, trigger, err)
	}

	h.logger.Info("Health score refreshed from event",
		zap.Int("project_id", projectID),
		zap.String("trigger", trigger),
		zap.Int("health_score", result.Score),
		zap.String("status", string(result.Status)),
	)
	return nil
}
