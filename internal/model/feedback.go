package model

import "time"

// Feedback is a client's weekly satisfaction report. At most one exists
// per (project, client, week_start_date).
type Feedback struct {
	ID                  int       `json:"id"`
	ProjectID           int       `json:"project_id"`
	ClientID            int       `json:"client_id"`
	WeekStartDate       time.Time `json:"week_start_date"` // canonical Monday
	SatisfactionRating  int       `json:"satisfaction_rating"`  // 1-5
	CommunicationRating int       `json:"communication_rating"` // 1-5
	Comments            string    `json:"comments"`
	FlagIssue           bool      `json:"flag_issue"`
	SubmittedAt         time.Time `json:"submitted_at"`

	ProjectName string `json:"project_name,omitempty"`
	ClientName  string `json:"client_name,omitempty"`
}
