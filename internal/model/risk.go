package model

import "time"

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

const (
	ImpactLow      = "low"
	ImpactMedium   = "medium"
	ImpactHigh     = "high"
	ImpactCritical = "critical"
)

const (
	RiskOpen       = "open"
	RiskInProgress = "in_progress"
	RiskResolved   = "resolved"
)

type Risk struct {
	ID             int        `json:"id"`
	ProjectID      int        `json:"project_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Severity       string     `json:"severity"` // low / medium / high
	Impact         string     `json:"impact"`   // low / medium / high / critical
	MitigationPlan string     `json:"mitigation_plan"`
	Status         string     `json:"status"` // open / in_progress / resolved
	ReportedByID   int        `json:"reported_by_id"`
	AssignedToID   *int       `json:"assigned_to_id,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	ProjectName    string `json:"project_name,omitempty"`
	ReportedByName string `json:"reported_by_name,omitempty"`
}
