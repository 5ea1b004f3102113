package health

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"projectpulse/internal/model"
	"projectpulse/pkg/metrics"
)

// ProjectStore is the slice of the project repository the scoring
// engine needs: load, enumerate, persist score.
type ProjectStore interface {
	GetByID(ctx context.Context, id int) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	UpdateHealth(ctx context.Context, id, score int, status model.ProjectStatus) error
}

// CheckinSource extracts the employee-confidence samples.
type CheckinSource interface {
	ListRecentByProject(ctx context.Context, projectID int, since time.Time, limit int) ([]model.Checkin, error)
}

// FeedbackSource extracts the client-satisfaction samples.
type FeedbackSource interface {
	ListRecentByProject(ctx context.Context, projectID int, since time.Time, limit int) ([]model.Feedback, error)
}

type Options struct {
	LookbackDays int // scoring window, default 28
	SampleLimit  int // max samples per extractor, default 4
	BatchWorkers int // fan-out width for RecomputeAll, default 4
	Defaults     Defaults
}

func (o Options) withFallbacks() Options {
	if o.LookbackDays <= 0 {
		o.LookbackDays = 28
	}
	if o.SampleLimit <= 0 {
		o.SampleLimit = 4
	}
	if o.BatchWorkers <= 0 {
		o.BatchWorkers = 4
	}
	if o.Defaults == (Defaults{}) {
		o.Defaults = NeutralDefaults()
	}
	return o
}

type Service struct {
	projects ProjectStore
	checkins CheckinSource
	feedback FeedbackSource
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(projects ProjectStore, checkins CheckinSource, feedback FeedbackSource, opts Options, logger *zap.Logger) *Service {
	return &Service{
		projects: projects,
		checkins: checkins,
		feedback: feedback,
		opts:     opts.withFallbacks(),
		logger:   logger,
		now:      time.Now,
	}
}

// Recompute scores one project and persists the result. A project that
// is already completed keeps its terminal status; only the score is
// refreshed.
func (s *Service) Recompute(ctx context.Context, projectID int) (Result, error) {
	started := time.Now()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return Result{}, fmt.Errorf("load project %d: %w", projectID, err)
	}

	now := s.now()
	since := LookbackWindow(now, s.opts.LookbackDays)

	feedback, err := s.feedback.ListRecentByProject(ctx, projectID, since, s.opts.SampleLimit)
	if err != nil {
		return Result{}, fmt.Errorf("load feedback for project %d: %w", projectID, err)
	}

	checkins, err := s.checkins.ListRecentByProject(ctx, projectID, since, s.opts.SampleLimit)
	if err != nil {
		return Result{}, fmt.Errorf("load checkins for project %d: %w", projectID, err)
	}

	result := Compute(project, feedback, checkins, now, s.opts.Defaults)
	if project.Status == model.StatusCompleted {
		result.Status = model.StatusCompleted
	}

	if err := s.projects.UpdateHealth(ctx, projectID, result.Score, result.Status); err != nil {
		return Result{}, fmt.Errorf("persist health for project %d: %w", projectID, err)
	}

	metrics.RecordHealthCompute("single", time.Since(started))
	metrics.IncrementHealthScoreUpdate(string(result.Status))

	s.logger.Info("Health score recomputed",
		zap.Int("project_id", projectID),
		zap.Int("health_score", result.Score),
		zap.String("status", string(result.Status)),
		zap.Int("feedback_samples", len(feedback)),
		zap.Int("checkin_samples", len(checkins)),
	)
	return result, nil
}

// BatchResult is the per-project outcome of a full recomputation.
type BatchResult struct {
	Project     string `json:"project"`
	Success     bool   `json:"success"`
	HealthScore int    `json:"healthScore"`
}

// RecomputeAll rescores every project. Projects are independent, so the
// work fans out across a bounded worker pool; one project's failure is
// recorded in its slot and never aborts the rest.
func (s *Service) RecomputeAll(ctx context.Context) ([]BatchResult, error) {
	started := time.Now()

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	results := make([]BatchResult, len(projects))

	var g errgroup.Group
	g.SetLimit(s.opts.BatchWorkers)
	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			result, err := s.Recompute(ctx, p.ID)
			if err != nil {
				s.logger.Error("Batch recompute failed for project",
					zap.Int("project_id", p.ID),
					zap.String("project", p.Name),
					zap.Error(err),
				)
				results[i] = BatchResult{Project: p.Name, Success: false}
				return nil
			}
			results[i] = BatchResult{Project: p.Name, Success: true, HealthScore: result.Score}
			return nil
		})
	}
	_ = g.Wait()

	metrics.RecordHealthCompute("batch", time.Since(started))

	s.logger.Info("Batch health recompute finished",
		zap.Int("projects", len(results)),
		zap.Duration("took", time.Since(started)),
	)
	return results, nil
}
