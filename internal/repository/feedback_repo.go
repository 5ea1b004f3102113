package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"projectpulse/internal/model"
)

type FeedbackRepository struct {
	db *pgxpool.Pool
}

func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Insert stores weekly client feedback. The (project, client, week)
// unique index backs the one-submission-per-week invariant.
func (r *FeedbackRepository) Insert(ctx context.Context, f *model.Feedback) error {
	query := `
        INSERT INTO feedback (project_id, client_id, week_start_date, satisfaction_rating,
                              communication_rating, comments, flag_issue, submitted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING id, submitted_at
    `
	err := r.db.QueryRow(ctx, query,
		f.ProjectID,
		f.ClientID,
		f.WeekStartDate,
		f.SatisfactionRating,
		f.CommunicationRating,
		f.Comments,
		f.FlagIssue,
	).Scan(&f.ID, &f.SubmittedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateWeek
	}
	return err
}

// ListRecentByProject returns up to limit feedback records inside the
// scoring window, newest week first.
func (r *FeedbackRepository) ListRecentByProject(ctx context.Context, projectID int, since time.Time, limit int) ([]model.Feedback, error) {
	query := `
        SELECT id, project_id, client_id, week_start_date, satisfaction_rating,
               communication_rating, comments, flag_issue, submitted_at
        FROM feedback
        WHERE project_id = $1 AND week_start_date >= $2
        ORDER BY week_start_date DESC
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, projectID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedback []model.Feedback
	for rows.Next() {
		var f model.Feedback
		err := rows.Scan(
			&f.ID, &f.ProjectID, &f.ClientID, &f.WeekStartDate, &f.SatisfactionRating,
			&f.CommunicationRating, &f.Comments, &f.FlagIssue, &f.SubmittedAt,
		)
		if err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

// List returns feedback filtered by optional project and client,
// newest week first, with display names resolved.
func (r *FeedbackRepository) List(ctx context.Context, projectID, clientID *int) ([]model.Feedback, error) {
	query := `
        SELECT f.id, f.project_id, f.client_id, f.week_start_date, f.satisfaction_rating,
               f.communication_rating, f.comments, f.flag_issue, f.submitted_at,
               p.name, u.name
        FROM feedback f
        JOIN projects p ON p.id = f.project_id
        JOIN users u ON u.id = f.client_id
        WHERE ($1::int IS NULL OR f.project_id = $1)
          AND ($2::int IS NULL OR f.client_id = $2)
        ORDER BY f.week_start_date DESC
    `
	rows, err := r.db.Query(ctx, query, projectID, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedback []model.Feedback
	for rows.Next() {
		var f model.Feedback
		err := rows.Scan(
			&f.ID, &f.ProjectID, &f.ClientID, &f.WeekStartDate, &f.SatisfactionRating,
			&f.CommunicationRating, &f.Comments, &f.FlagIssue, &f.SubmittedAt,
			&f.ProjectName, &f.ClientName,
		)
		if err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

// ListLatest returns the most recently submitted feedback for the
// activity feed, optionally scoped to one project.
func (r *FeedbackRepository) ListLatest(ctx context.Context, projectID *int, limit int) ([]model.Feedback, error) {
	query := `
        SELECT f.id, f.project_id, f.client_id, f.week_start_date, f.satisfaction_rating,
               f.communication_rating, f.comments, f.flag_issue, f.submitted_at,
               p.name, u.name
        FROM feedback f
        JOIN projects p ON p.id = f.project_id
        JOIN users u ON u.id = f.client_id
        WHERE ($1::int IS NULL OR f.project_id = $1)
        ORDER BY f.submitted_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, projectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedback []model.Feedback
	for rows.Next() {
		var f model.Feedback
		err := rows.Scan(
			&f.ID, &f.ProjectID, &f.ClientID, &f.WeekStartDate, &f.SatisfactionRating,
			&f.CommunicationRating, &f.Comments, &f.FlagIssue, &f.SubmittedAt,
			&f.ProjectName, &f.ClientName,
		)
		if err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}
