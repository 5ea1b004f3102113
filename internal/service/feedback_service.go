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

type SubmitFeedbackInput struct {
	ProjectID           int
	ClientID            int
	SatisfactionRating  int
	CommunicationRating int
	Comments            string
	FlagIssue           bool
}

type FeedbackService struct {
	feedbackRepo *repository.FeedbackRepository
	publisher    Publisher
	logger       *zap.Logger
	now          func() time.Time
}

func NewFeedbackService(feedbackRepo *repository.FeedbackRepository, publisher Publisher, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

// Submit stores this week's client feedback. Same weekly dedup contract
// as checkins, keyed on (project, client, week).
func (s *FeedbackService) Submit(ctx context.Context, in SubmitFeedbackInput) (*model.Feedback, error) {
	f := &model.Feedback{
		ProjectID:           in.ProjectID,
		ClientID:            in.ClientID,
		WeekStartDate:       health.WeekStart(s.now()),
		SatisfactionRating:  in.SatisfactionRating,
		CommunicationRating: in.CommunicationRating,
		Comments:            in.Comments,
		FlagIssue:           in.FlagIssue,
	}

	if err := s.feedbackRepo.Insert(ctx, f); err != nil {
		return nil, err
	}

	metrics.IncrementSubmission("feedback")

	if err := s.publisher.Publish(mq.EventFeedbackCreated, mq.FeedbackCreatedPayload{
		FeedbackID:  f.ID,
		ProjectID:   f.ProjectID,
		ClientID:    f.ClientID,
		FlagIssue:   f.FlagIssue,
		SubmittedAt: f.SubmittedAt,
	}); err != nil {
		s.logger.Warn("Failed to publish feedback.created event",
			zap.Int("feedback_id", f.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("Feedback submitted",
		zap.Int("feedback_id", f.ID),
		zap.Int("project_id", f.ProjectID),
		zap.Int("client_id", f.ClientID),
		zap.Bool("flag_issue", f.FlagIssue),
	)
	return f, nil
}

func (s *FeedbackService) List(ctx context.Context, projectID, clientID *int) ([]model.Feedback, error) {
	return s.feedbackRepo.List(ctx, projectID, clientID)
}
