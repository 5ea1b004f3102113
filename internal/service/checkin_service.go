package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"projectpulse/internal/model"
	"projectpulse/internal/repository"
	"projectpulse/internal/service/health"
	"projectpulse/pkg/metrics"
	"projectpulse/pkg/mq"
)

type SubmitCheckinInput struct {
	ProjectID            int
	EmployeeID           int
	ProgressSummary      string
	Blockers             string
	ConfidenceLevel      int
	CompletionPercentage int
}

type CheckinService struct {
	checkinRepo *repository.CheckinRepository
	publisher   Publisher
	logger      *zap.Logger
	now         func() time.Time
}

func NewCheckinService(checkinRepo *repository.CheckinRepository, publisher Publisher, logger *zap.Logger) *CheckinService {
	return &CheckinService{
		checkinRepo: checkinRepo,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// Submit stores this week's checkin. The week anchor is canonicalized
// to Monday 00:00; a second submission for the same week returns
// repository.ErrDuplicateWeek.
func (s *CheckinService) Submit(ctx context.Context, in SubmitCheckinInput) (*model.Checkin, error) {
	c := &model.Checkin{
		ProjectID:            in.ProjectID,
		EmployeeID:           in.EmployeeID,
		WeekStartDate:        health.WeekStart(s.now()),
		ProgressSummary:      in.ProgressSummary,
		Blockers:             in.Blockers,
		ConfidenceLevel:      in.ConfidenceLevel,
		CompletionPercentage: in.CompletionPercentage,
	}

	if err := s.checkinRepo.Insert(ctx, c); err != nil {
		return nil, err
	}

	metrics.IncrementSubmission("checkin")

	if err := s.publisher.Publish(mq.EventCheckinCreated, mq.CheckinCreatedPayload{
		CheckinID:   c.ID,
		ProjectID:   c.ProjectID,
		EmployeeID:  c.EmployeeID,
		SubmittedAt: c.SubmittedAt,
	}); err != nil {
		s.logger.Warn("Failed to publish checkin.created event",
			zap.Int("checkin_id", c.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("Checkin submitted",
		zap.Int("checkin_id", c.ID),
		zap.Int("project_id", c.ProjectID),
		zap.Int("employee_id", c.EmployeeID),
	)
	return c, nil
}

func (s *CheckinService) List(ctx context.Context, projectID, employeeID *int) ([]model.Checkin, error) {
	return s.checkinRepo.List(ctx, projectID, employeeID)
}
