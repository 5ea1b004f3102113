package mq

import "time"

// Routing keys for project activity events.
const (
	EventCheckinCreated  = "checkin.created"
	EventFeedbackCreated = "feedback.created"
	EventRiskCreated     = "risk.created"
	EventProjectCreated  = "project.created"
)

type CheckinCreatedPayload struct {
	CheckinID   int       `json:"checkin_id"`
	ProjectID   int       `json:"project_id"`
	EmployeeID  int       `json:"employee_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type FeedbackCreatedPayload struct {
	FeedbackID  int       `json:"feedback_id"`
	ProjectID   int       `json:"project_id"`
	ClientID    int       `json:"client_id"`
	FlagIssue   bool      `json:"flag_issue"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type RiskCreatedPayload struct {
	RiskID     int    `json:"risk_id"`
	ProjectID  int    `json:"project_id"`
	ReporterID int    `json:"reporter_id"`
	Severity   string `json:"severity"`
}

type ProjectCreatedPayload struct {
	ProjectID int    `json:"project_id"`
	Name      string `json:"name"`
}
