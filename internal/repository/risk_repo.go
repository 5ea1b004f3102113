package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"projectpulse/internal/model"
)

type RiskRepository struct {
	db *pgxpool.Pool
}

func NewRiskRepository(db *pgxpool.Pool) *RiskRepository {
	return &RiskRepository{db: db}
}

// Insert stores a reported risk.
func (r *RiskRepository) Insert(ctx context.Context, risk *model.Risk) error {
	query := `
        INSERT INTO risks (project_id, title, description, severity, impact,
                           mitigation_plan, status, reported_by, assigned_to, due_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at
    `
	return r.db.QueryRow(ctx, query,
		risk.ProjectID,
		risk.Title,
		risk.Description,
		risk.Severity,
		risk.Impact,
		risk.MitigationPlan,
		risk.Status,
		risk.ReportedByID,
		risk.AssignedToID,
		risk.DueDate,
	).Scan(&risk.ID, &risk.CreatedAt, &risk.UpdatedAt)
}

// List returns risks filtered by optional project, status and severity,
// newest first, with display names resolved.
func (r *RiskRepository) List(ctx context.Context, projectID *int, status, severity string) ([]model.Risk, error) {
	query := `
        SELECT r.id, r.project_id, r.title, r.description, r.severity, r.impact,
               r.mitigation_plan, r.status, r.reported_by, r.assigned_to, r.due_date,
               r.created_at, r.updated_at, p.name, u.name
        FROM risks r
        JOIN projects p ON p.id = r.project_id
        JOIN users u ON u.id = r.reported_by
        WHERE ($1::int IS NULL OR r.project_id = $1)
          AND ($2 = '' OR r.status = $2)
          AND ($3 = '' OR r.severity = $3)
        ORDER BY r.created_at DESC
    `
	rows, err := r.db.Query(ctx, query, projectID, status, severity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var risks []model.Risk
	for rows.Next() {
		var risk model.Risk
		err := rows.Scan(
			&risk.ID, &risk.ProjectID, &risk.Title, &risk.Description, &risk.Severity, &risk.Impact,
			&risk.MitigationPlan, &risk.Status, &risk.ReportedByID, &risk.AssignedToID, &risk.DueDate,
			&risk.CreatedAt, &risk.UpdatedAt, &risk.ProjectName, &risk.ReportedByName,
		)
		if err != nil {
			return nil, err
		}
		risks = append(risks, risk)
	}
	return risks, rows.Err()
}

// ListLatest returns the most recently reported risks for the activity
// feed, optionally scoped to one project.
func (r *RiskRepository) ListLatest(ctx context.Context, projectID *int, limit int) ([]model.Risk, error) {
	query := `
        SELECT r.id, r.project_id, r.title, r.description, r.severity, r.impact,
               r.mitigation_plan, r.status, r.reported_by, r.assigned_to, r.due_date,
               r.created_at, r.updated_at, p.name, u.name
        FROM risks r
        JOIN projects p ON p.id = r.project_id
        JOIN users u ON u.id = r.reported_by
        WHERE ($1::int IS NULL OR r.project_id = $1)
        ORDER BY r.created_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, projectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var risks []model.Risk
	for rows.Next() {
		var risk model.Risk
		err := rows.Scan(
			&risk.ID, &risk.ProjectID, &risk.Title, &risk.Description, &risk.Severity, &risk.Impact,
			&risk.MitigationPlan, &risk.Status, &risk.ReportedByID, &risk.AssignedToID, &risk.DueDate,
			&risk.CreatedAt, &risk.UpdatedAt, &risk.ProjectName, &risk.ReportedByName,
		)
		if err != nil {
			return nil, err
		}
		risks = append(risks, risk)
	}
	return risks, rows.Err()
}
