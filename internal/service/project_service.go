package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"projectpulse/internal/model"
	"projectpulse/internal/repository"
	"projectpulse/pkg/mq"
)

var (
	ErrInvalidClient    = errors.New("invalid client selected")
	ErrUnknownEmployees = errors.New("one or more employees not found")
)

type CreateProjectInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	ClientID    int
	EmployeeIDs []int
}

type ProjectService struct {
	projectRepo *repository.ProjectRepository
	userRepo    *repository.UserRepository
	publisher   Publisher
	logger      *zap.Logger
}

func NewProjectService(projectRepo *repository.ProjectRepository, userRepo *repository.UserRepository, publisher Publisher, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Create validates the referenced users and stores the project. New
// projects start at a full health score and on_track.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	client, err := s.userRepo.FindByID(ctx, in.ClientID)
	if err != nil || client.Role != model.RoleClient {
		return nil, ErrInvalidClient
	}

	count, err := s.userRepo.CountByIDs(ctx, in.EmployeeIDs)
	if err != nil {
		return nil, err
	}
	if count != len(in.EmployeeIDs) {
		return nil, ErrUnknownEmployees
	}

	p := &model.Project{
		Name:        in.Name,
		Description: in.Description,
		Status:      model.StatusOnTrack,
		HealthScore: 100,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		ClientID:    in.ClientID,
		EmployeeIDs: in.EmployeeIDs,
	}

	id, err := s.projectRepo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(mq.EventProjectCreated, mq.ProjectCreatedPayload{
		ProjectID: id,
		Name:      p.Name,
	}); err != nil {
		s.logger.Warn("Failed to publish project.created event",
			zap.Int("project_id", id),
			zap.Error(err),
		)
	}

	return s.projectRepo.GetByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id int) (*model.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// Update applies admin edits on top of the stored record, so partial
// payloads keep the untouched fields.
func (s *ProjectService) Update(ctx context.Context, id int, apply func(*model.Project)) (*model.Project, error) {
	p, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(p)

	if err := s.projectRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(ctx, id)
}

func (s *ProjectService) Delete(ctx context.Context, id int) error {
	return s.projectRepo.Delete(ctx, id)
}
