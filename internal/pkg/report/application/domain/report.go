package report

import "time"

// Type distinguishes what a report targets.
type Type string

const (
	TypePost Type = "POST"
	TypeUser Type = "USER"
)

// Result is the moderation verdict stamped at resolution.
type Result string

const (
	ResultViolated Result = "VIOLATED"
	ResultNormal   Result = "NORMAL"
)

// Report collects complaints against one user or one post. Multiple reporters
// append reasons to the same open report; a resolved report is closed and the
// next complaint opens a fresh one.
type Report struct {
	ID             string    `json:"id"`
	ReportedUserID string    `json:"reportedUserId"`
	PostID         *string   `json:"postId"`
	Type           Type      `json:"type"`
	Resolved       bool      `json:"resolved"`
	Result         *Result   `json:"result"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Reason is one reporter's complaint attached to a report.
type Reason struct {
	ID        string    `json:"id"`
	ReportID  string    `json:"reportId"`
	UserID    string    `json:"userId"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReportedUser is the accused account slice shown in listings.
type ReportedUser struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Ava      *string `json:"ava"`
}

// Summary is one row in the moderation queue.
type Summary struct {
	ID           string       `json:"id"`
	Resolved     bool         `json:"resolved"`
	ReportedUser ReportedUser `json:"reportedUser"`
	PostID       *string      `json:"postId,omitempty"`
	ReasonCount  int          `json:"reasonCount"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Reporter identifies who filed a reason.
type Reporter struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ReasonView is a reason joined with its reporter.
type ReasonView struct {
	ID        string    `json:"id"`
	User      Reporter  `json:"user"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}
