package model

import "time"

// ProjectStatus is derived from the health score, except for
// StatusCompleted which is only ever set by an admin edit. The scoring
// engine must never overwrite a completed project's status.
type ProjectStatus string

const (
	StatusOnTrack   ProjectStatus = "on_track"
	StatusAtRisk    ProjectStatus = "at_risk"
	StatusCritical  ProjectStatus = "critical"
	StatusCompleted ProjectStatus = "completed"
)

type Project struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	HealthScore int           `json:"health_score"` // 0-100
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	ClientID    int           `json:"client_id"`
	EmployeeIDs []int         `json:"employee_ids"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
