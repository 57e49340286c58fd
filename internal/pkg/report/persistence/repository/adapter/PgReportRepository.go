package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	report "github.com/trang-ptt/INSTARE-BE/internal/pkg/report/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/report/persistence/repository/port"
)

type PgReportRepository struct {
	pool *pgxpool.Pool
}

func NewPgReportRepository(pool *pgxpool.Pool) *PgReportRepository {
	return &PgReportRepository{pool: pool}
}

var _ repository.ReportRepository = (*PgReportRepository)(nil)

const reportColumns = `id::text, reported_user_id::text, post_id::text, type, resolved, result, created_at, updated_at`

func scanReport(row pgx.Row) (*report.Report, error) {
	var r report.Report
	err := row.Scan(&r.ID, &r.ReportedUserID, &r.PostID, &r.Type, &r.Resolved,
		&r.Result, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PgReportRepository) FindOpen(ctx context.Context, reportedUserID string, postID *string) (*report.Report, error) {
	return scanReport(r.pool.QueryRow(ctx, `
		SELECT `+reportColumns+`
		FROM report
		WHERE reported_user_id = $1::uuid
		  AND ($2::uuid IS NULL OR post_id = $2::uuid)
		  AND ($2::uuid IS NOT NULL OR post_id IS NULL)
		  AND resolved = false
		LIMIT 1
	`, reportedUserID, postID))
}

func (r *PgReportRepository) Create(ctx context.Context, reportedUserID string, postID *string, typ report.Type) (*report.Report, error) {
	return scanReport(r.pool.QueryRow(ctx, `
		INSERT INTO report (reported_user_id, post_id, type)
		VALUES ($1::uuid, $2::uuid, $3)
		RETURNING `+reportColumns+`
	`, reportedUserID, postID, string(typ)))
}

func (r *PgReportRepository) FindByID(ctx context.Context, id string) (*report.Report, error) {
	return scanReport(r.pool.QueryRow(ctx, `
		SELECT `+reportColumns+` FROM report WHERE id = $1::uuid
	`, id))
}

func (r *PgReportRepository) AddReason(ctx context.Context, reportID, userID, reason string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO report_reason (report_id, user_id, reason)
		VALUES ($1::uuid, $2::uuid, $3)
	`, reportID, userID, reason)
	return err
}

func (r *PgReportRepository) ListReasons(ctx context.Context, reportID string) ([]report.ReasonView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT rr.id::text, u.id::text, u.username, rr.reason, rr.created_at
		FROM report_reason rr
		JOIN "user" u ON u.id = rr.user_id
		WHERE rr.report_id = $1::uuid
		ORDER BY rr.created_at ASC
	`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reasons []report.ReasonView
	for rows.Next() {
		var v report.ReasonView
		if err := rows.Scan(&v.ID, &v.User.ID, &v.User.Username, &v.Reason, &v.CreatedAt); err != nil {
			return nil, err
		}
		reasons = append(reasons, v)
	}
	return reasons, rows.Err()
}

func (r *PgReportRepository) ListByType(ctx context.Context, typ report.Type) ([]report.Summary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT rp.id::text, rp.resolved, u.id::text, u.username, u.ava, rp.post_id::text,
		       (SELECT count(*) FROM report_reason rr WHERE rr.report_id = rp.id),
		       rp.updated_at
		FROM report rp
		JOIN "user" u ON u.id = rp.reported_user_id
		WHERE rp.type = $1
		ORDER BY rp.created_at DESC
	`, string(typ))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []report.Summary
	for rows.Next() {
		var s report.Summary
		if err := rows.Scan(&s.ID, &s.Resolved, &s.ReportedUser.ID, &s.ReportedUser.Username,
			&s.ReportedUser.Ava, &s.PostID, &s.ReasonCount, &s.UpdatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *PgReportRepository) MarkResolved(ctx context.Context, id string, result *report.Result) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE report SET resolved = true, result = $2, updated_at = now()
		WHERE id = $1::uuid
	`, id, result)
	return err
}
