package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"projectpulse/internal/model"
	"projectpulse/internal/repository"
	"projectpulse/pkg/metrics"
	"projectpulse/pkg/mq"
)

type ReportRiskInput struct {
	ProjectID      int
	Title          string
	Description    string
	Severity       string
	Impact         string
	MitigationPlan string
	ReportedByID   int
	AssignedToID   *int
	DueDate        *time.Time
}

type RiskService struct {
	riskRepo  *repository.RiskRepository
	publisher Publisher
	logger    *zap.Logger
}

func NewRiskService(riskRepo *repository.RiskRepository, publisher Publisher, logger *zap.Logger) *RiskService {
	return &RiskService{
		riskRepo:  riskRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Report stores a new risk. Severity and impact default to medium,
// status always starts open.
func (s *RiskService) Report(ctx context.Context, in ReportRiskInput) (*model.Risk, error) {
	if in.Severity == "" {
		in.Severity = model.SeverityMedium
	}
	if in.Impact == "" {
		in.Impact = model.ImpactMedium
	}

	r := &model.Risk{
		ProjectID:      in.ProjectID,
		Title:          in.Title,
		Description:    in.Description,
		Severity:       in.Severity,
		Impact:         in.Impact,
		MitigationPlan: in.MitigationPlan,
		Status:         model.RiskOpen,
		ReportedByID:   in.ReportedByID,
		AssignedToID:   in.AssignedToID,
		DueDate:        in.DueDate,
	}

	if err := s.riskRepo.Insert(ctx, r); err != nil {
		return nil, err
	}

	metrics.IncrementSubmission("risk")

	if err := s.publisher.Publish(mq.EventRiskCreated, mq.RiskCreatedPayload{
		RiskID:     r.ID,
		ProjectID:  r.ProjectID,
		ReporterID: r.ReportedByID,
		Severity:   r.Severity,
	}); err != nil {
		s.logger.Warn("Failed to publish risk.created event",
			zap.Int("risk_id", r.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("Risk reported",
		zap.Int("risk_id", r.ID),
		zap.Int("project_id", r.ProjectID),
		zap.String("severity", r.Severity),
	)
	return r, nil
}

func (s *RiskService) List(ctx context.Context, projectID *int, status, severity string) ([]model.Risk, error) {
	return s.riskRepo.List(ctx, projectID, status, severity)
}
