package activity

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"projectpulse/internal/model"
	"projectpulse/pkg/metrics"
)

type CheckinSource interface {
	ListLatest(ctx context.Context, projectID *int, limit int) ([]model.Checkin, error)
}

type FeedbackSource interface {
	ListLatest(ctx context.Context, projectID *int, limit int) ([]model.Feedback, error)
}

type RiskSource interface {
	ListLatest(ctx context.Context, projectID *int, limit int) ([]model.Risk, error)
}

type Options struct {
	DefaultLimit int // feed size when the caller passes none, default 20
	// FetchMultiplier scales the per-source fetch cap. At 1 each source
	// is capped at the feed limit before merging, which can
	// under-represent a source whose recent items are older than
	// another's. Raise it to trade read cost for a fairer merge.
	FetchMultiplier int
}

func (o Options) withFallbacks() Options {
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = 20
	}
	if o.FetchMultiplier <= 0 {
		o.FetchMultiplier = 1
	}
	return o
}

// Service merges checkins, feedback and risks into one chronological
// feed. Read-only: it never mutates the source records.
type Service struct {
	checkins CheckinSource
	feedback FeedbackSource
	risks    RiskSource
	opts     Options
	logger   *zap.Logger
}

func NewService(checkins CheckinSource, feedback FeedbackSource, risks RiskSource, opts Options, logger *zap.Logger) *Service {
	return &Service{
		checkins: checkins,
		feedback: feedback,
		risks:    risks,
		opts:     opts.withFallbacks(),
		logger:   logger,
	}
}

// BuildFeed returns the limit most recent activity entries, newest
// first, optionally scoped to one project. Any source may be empty.
func (s *Service) BuildFeed(ctx context.Context, projectID *int, limit int) ([]model.ActivityEntry, error) {
	started := time.Now()

	if limit <= 0 {
		limit = s.opts.DefaultLimit
	}
	fetchLimit := limit * s.opts.FetchMultiplier

	checkins, err := s.checkins.ListLatest(ctx, projectID, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("load checkins: %w", err)
	}
	feedback, err := s.feedback.ListLatest(ctx, projectID, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}
	risks, err := s.risks.ListLatest(ctx, projectID, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("load risks: %w", err)
	}

	entries := make([]model.ActivityEntry, 0, len(checkins)+len(feedback)+len(risks))

	for _, c := range checkins {
		name := c.EmployeeName
		if name == "" {
			name = "Employee"
		}
		entries = append(entries, model.ActivityEntry{
			ID:          c.ID,
			Type:        model.ActivityCheckin,
			Title:       fmt.Sprintf("Weekly Check-in by %s", name),
			Description: fmt.Sprintf("Progress: %d%% | Confidence: %d/5", c.CompletionPercentage, c.ConfidenceLevel),
			ProjectID:   c.ProjectID,
			ProjectName: c.ProjectName,
			User:        model.UserRef{ID: c.EmployeeID, Name: c.EmployeeName},
			CreatedAt:   c.SubmittedAt,
		})
	}

	for _, f := range feedback {
		name := f.ClientName
		if name == "" {
			name = "Client"
		}
		entries = append(entries, model.ActivityEntry{
			ID:          f.ID,
			Type:        model.ActivityFeedback,
			Title:       fmt.Sprintf("Client Feedback from %s", name),
			Description: fmt.Sprintf("Satisfaction: %d/5 | Communication: %d/5", f.SatisfactionRating, f.CommunicationRating),
			ProjectID:   f.ProjectID,
			ProjectName: f.ProjectName,
			User:        model.UserRef{ID: f.ClientID, Name: f.ClientName},
			CreatedAt:   f.SubmittedAt,
		})
	}

	for _, r := range risks {
		entries = append(entries, model.ActivityEntry{
			ID:          r.ID,
			Type:        model.ActivityRisk,
			Title:       fmt.Sprintf("Risk Reported: %s", r.Title),
			Description: fmt.Sprintf("Severity: %s | Status: %s", r.Severity, r.Status),
			ProjectID:   r.ProjectID,
			ProjectName: r.ProjectName,
			User:        model.UserRef{ID: r.ReportedByID, Name: r.ReportedByName},
			CreatedAt:   r.CreatedAt,
		})
	}

	// Newest first; ties keep the checkin -> feedback -> risk input order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	scoped := "all"
	if projectID != nil {
		scoped = "project"
	}
	metrics.RecordActivityFeedDuration(scoped, time.Since(started))

	s.logger.Debug("Activity feed built",
		zap.Int("entries", len(entries)),
		zap.Int("limit", limit),
		zap.String("scoped", scoped),
	)
	return entries, nil
}
