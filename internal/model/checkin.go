package model

import "time"

// Checkin is an employee's weekly progress report. At most one checkin
// exists per (project, employee, week_start_date).
type Checkin struct {
	ID                   int       `json:"id"`
	ProjectID            int       `json:"project_id"`
	EmployeeID           int       `json:"employee_id"`
	WeekStartDate        time.Time `json:"week_start_date"` // canonical Monday
	ProgressSummary      string    `json:"progress_summary"`
	Blockers             string    `json:"blockers"`
	ConfidenceLevel      int       `json:"confidence_level"`      // 1-5
	CompletionPercentage int       `json:"completion_percentage"` // 0-100
	SubmittedAt          time.Time `json:"submitted_at"`

	ProjectName  string `json:"project_name,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
}
