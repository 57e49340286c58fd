package repository

import (
	"context"

	report "github.com/trang-ptt/INSTARE-BE/internal/pkg/report/application/domain"
)

// ReportRepository persists moderation reports and their reasons.
// Find methods return (nil, nil) when the row does not exist.
type ReportRepository interface {
	// FindOpen returns the unresolved report against the user (and post, when
	// postID is non-nil) so repeat complaints pile onto one report.
	FindOpen(ctx context.Context, reportedUserID string, postID *string) (*report.Report, error)
	Create(ctx context.Context, reportedUserID string, postID *string, typ report.Type) (*report.Report, error)
	FindByID(ctx context.Context, id string) (*report.Report, error)

	AddReason(ctx context.Context, reportID, userID, reason string) error
	ListReasons(ctx context.Context, reportID string) ([]report.ReasonView, error)

	// ListByType returns the moderation queue for one target type, newest
	// report first, with reason counts resolved.
	ListByType(ctx context.Context, typ report.Type) ([]report.Summary, error)

	MarkResolved(ctx context.Context, id string, result *report.Result) error
}
