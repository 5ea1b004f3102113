package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"projectpulse/internal/model"
)

type CheckinRepository struct {
	db *pgxpool.Pool
}

func NewCheckinRepository(db *pgxpool.Pool) *CheckinRepository {
	return &CheckinRepository{db: db}
}

// Insert stores a weekly checkin. The (project, employee, week) unique
// index backs the one-submission-per-week invariant.
func (r *CheckinRepository) Insert(ctx context.Context, c *model.Checkin) error {
	query := `
        INSERT INTO checkins (project_id, employee_id, week_start_date, progress_summary,
                              blockers, confidence_level, completion_percentage, submitted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING id, submitted_at
    `
	err := r.db.QueryRow(ctx, query,
		c.ProjectID,
		c.EmployeeID,
		c.WeekStartDate,
		c.ProgressSummary,
		c.Blockers,
		c.ConfidenceLevel,
		c.CompletionPercentage,
	).Scan(&c.ID, &c.SubmittedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateWeek
	}
	return err
}

// ListRecentByProject returns up to limit checkins inside the scoring
// window, newest week first. An empty window yields an empty slice.
func (r *CheckinRepository) ListRecentByProject(ctx context.Context, projectID int, since time.Time, limit int) ([]model.Checkin, error) {
	query := `
        SELECT id, project_id, employee_id, week_start_date, progress_summary,
               blockers, confidence_level, completion_percentage, submitted_at
        FROM checkins
        WHERE project_id = $1 AND week_start_date >= $2
        ORDER BY week_start_date DESC
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, projectID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkins []model.Checkin
	for rows.Next() {
		var c model.Checkin
		err := rows.Scan(
			&c.ID, &c.ProjectID, &c.EmployeeID, &c.WeekStartDate, &c.ProgressSummary,
			&c.Blockers, &c.ConfidenceLevel, &c.CompletionPercentage, &c.SubmittedAt,
		)
		if err != nil {
			return nil, err
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}

// List returns checkins filtered by optional project and employee,
// newest week first, with display names resolved.
func (r *CheckinRepository) List(ctx context.Context, projectID, employeeID *int) ([]model.Checkin, error) {
	query := `
        SELECT c.id, c.project_id, c.employee_id, c.week_start_date, c.progress_summary,
               c.blockers, c.confidence_level, c.completion_percentage, c.submitted_at,
               p.name, u.name
        FROM checkins c
        JOIN projects p ON p.id = c.project_id
        JOIN users u ON u.id = c.employee_id
        WHERE ($1::int IS NULL OR c.project_id = $1)
          AND ($2::int IS NULL OR c.employee_id = $2)
        ORDER BY c.week_start_date DESC
    `
	rows, err := r.db.Query(ctx, query, projectID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkins []model.Checkin
	for rows.Next() {
		var c model.Checkin
		err := rows.Scan(
			&c.ID, &c.ProjectID, &c.EmployeeID, &c.WeekStartDate, &c.ProgressSummary,
			&c.Blockers, &c.ConfidenceLevel, &c.CompletionPercentage, &c.SubmittedAt,
			&c.ProjectName, &c.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}

// ListLatest returns the most recently submitted checkins for the
// activity feed, optionally scoped to one project.
func (r *CheckinRepository) ListLatest(ctx context.Context, projectID *int, limit int) ([]model.Checkin, error) {
	query := `
        SELECT c.id, c.project_id, c.employee_id, c.week_start_date, c.progress_summary,
               c.blockers, c.confidence_level, c.completion_percentage, c.submitted_at,
               p.name, u.name
        FROM checkins c
        JOIN projects p ON p.id = c.project_id
        JOIN users u ON u.id = c.employee_id
        WHERE ($1::int IS NULL OR c.project_id = $1)
        ORDER BY c.submitted_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, projectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkins []model.Checkin
	for rows.Next() {
		var c model.Checkin
		err := rows.Scan(
			&c.ID, &c.ProjectID, &c.EmployeeID, &c.WeekStartDate, &c.ProgressSummary,
			&c.Blockers, &c.ConfidenceLevel, &c.CompletionPercentage, &c.SubmittedAt,
			&c.ProjectName, &c.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}
