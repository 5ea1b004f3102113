package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projectpulse/internal/model"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

// Insert creates a project together with its employee assignments.
func (r *ProjectRepository) Insert(ctx context.Context, p *model.Project) (int, error) {
	r.logger.Debug("Inserting project",
		zap.Int("client_id", p.ClientID),
		zap.String("name", p.Name),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO projects (name, description, status, health_score, start_date, end_date, client_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	var id int
	err = tx.QueryRow(ctx, query,
		p.Name,
		p.Description,
		p.Status,
		p.HealthScore,
		p.StartDate,
		p.EndDate,
		p.ClientID,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return 0, err
	}

	for _, employeeID := range p.EmployeeIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO project_employees (project_id, user_id) VALUES ($1, $2)`,
			id, employeeID,
		)
		if err != nil {
			r.logger.Error("Failed to assign employee",
				zap.Int("project_id", id),
				zap.Int("user_id", employeeID),
				zap.Error(err),
			)
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	r.logger.Info("Project inserted successfully",
		zap.Int("id", id),
		zap.Int("client_id", p.ClientID),
	)
	return id, nil
}

// GetByID returns a single project with its employee IDs.
func (r *ProjectRepository) GetByID(ctx context.Context, id int) (*model.Project, error) {
	query := `
        SELECT p.id, p.name, p.description, p.status, p.health_score,
               p.start_date, p.end_date, p.client_id, p.created_at, p.updated_at,
               COALESCE(array_agg(pe.user_id) FILTER (WHERE pe.user_id IS NOT NULL), '{}')
        FROM projects p
        LEFT JOIN project_employees pe ON pe.project_id = p.id
        WHERE p.id = $1
        GROUP BY p.id
    `
	var p model.Project
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Status, &p.HealthScore,
		&p.StartDate, &p.EndDate, &p.ClientID, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeIDs,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	query := `
        SELECT p.id, p.name, p.description, p.status, p.health_score,
               p.start_date, p.end_date, p.client_id, p.created_at, p.updated_at,
               COALESCE(array_agg(pe.user_id) FILTER (WHERE pe.user_id IS NOT NULL), '{}')
        FROM projects p
        LEFT JOIN project_employees pe ON pe.project_id = p.id
        GROUP BY p.id
        ORDER BY p.created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Status, &p.HealthScore,
			&p.StartDate, &p.EndDate, &p.ClientID, &p.CreatedAt, &p.UpdatedAt,
			&p.EmployeeIDs,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update applies admin edits to the descriptive fields.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	query := `
        UPDATE projects
        SET name = $2, description = $3, status = $4,
            start_date = $5, end_date = $6, updated_at = NOW()
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Status, p.StartDate, p.EndDate,
	)
	if err != nil {
		r.logger.Error("Failed to update project", zap.Int("id", p.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateHealth persists a freshly computed score and status.
func (r *ProjectRepository) UpdateHealth(ctx context.Context, id, score int, status model.ProjectStatus) error {
	query := `
        UPDATE projects
        SET health_score = $2, status = $3, updated_at = NOW()
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, id, score, status)
	if err != nil {
		r.logger.Error("Failed to update project health",
			zap.Int("id", id),
			zap.Error(err),
		)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.logger.Debug("Project health updated",
		zap.Int("id", id),
		zap.Int("health_score", score),
		zap.String("status", string(status)),
	)
	return nil
}

// Delete removes a project and its dependent records.
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete project", zap.Int("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.logger.Info("Project deleted", zap.Int("id", id))
	return nil
}
