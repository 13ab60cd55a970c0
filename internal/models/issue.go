package models

import "time"

// Issue statuses
const (
	IssueOpen       = "open"
	IssueInProgress = "in-progress"
	IssueResolved   = "resolved"
	IssueClosed     = "closed"
)

// Issue is a complaint or maintenance request. Issues are never hard
// deleted; they retire through the status field.
type Issue struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	Title       string    `json:"title"`
	Category    string    `json:"category,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Status      string    `json:"status"`
	UnitNumber  string    `json:"unitNumber,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateIssueRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	UnitNumber  string `json:"unitNumber"`
	Description string `json:"description"`
}
