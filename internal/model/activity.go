package model

import "time"

const (
	ActivityCheckin  = "checkin"
	ActivityFeedback = "feedback"
	ActivityRisk     = "risk"
)

// ActivityEntry is a derived, view-only projection of a checkin,
// feedback or risk record. It is never persisted.
type ActivityEntry struct {
	ID          int       `json:"id"`
	Type        string    `json:"type"` // checkin / feedback / risk
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ProjectID   int       `json:"project_id"`
	ProjectName string    `json:"project_name,omitempty"`
	User        UserRef   `json:"user"`
	CreatedAt   time.Time `json:"created_at"`
}
