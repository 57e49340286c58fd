package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	notify "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/persistence/repository/port"
)

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

var _ repository.NotificationRepository = (*PgNotificationRepository)(nil)
var _ repository.BroadcastRepository = (*PgNotificationRepository)(nil)

func (r *PgNotificationRepository) Create(ctx context.Context, n notify.Notification) (*notify.Notification, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notification (interacted_id, notified_id, noti_type, post_id)
		VALUES ($1::uuid, $2::uuid, $3, $4::uuid)
		RETURNING id::text, read, created_at
	`, n.InteractedID, n.NotifiedID, n.Kind, n.PostID).Scan(&n.ID, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *PgNotificationRepository) FindByID(ctx context.Context, id string) (*notify.Notification, error) {
	var n notify.Notification
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, interacted_id::text, notified_id::text, noti_type, post_id::text, read, created_at
		FROM notification WHERE id = $1::uuid
	`, id).Scan(&n.ID, &n.InteractedID, &n.NotifiedID, &n.Kind, &n.PostID, &n.Read, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *PgNotificationRepository) ListForUser(ctx context.Context, userID string) ([]notify.View, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT n.id::text, u.id::text, u.username, u.ava, n.post_id::text, n.noti_type, n.read, n.created_at
		FROM notification n
		JOIN "user" u ON u.id = n.interacted_id
		WHERE n.notified_id = $1::uuid
		ORDER BY n.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []notify.View
	for rows.Next() {
		var v notify.View
		if err := rows.Scan(&v.ID, &v.Interacted.ID, &v.Interacted.Username, &v.Interacted.Ava,
			&v.PostID, &v.NotiType, &v.Read, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.Message = v.NotiType.Message()
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE notification SET read = true WHERE id = $1::uuid`, id)
	return err
}

func (r *PgNotificationRepository) DeleteMatching(ctx context.Context, interactedID, notifiedID string, kind notify.Kind, postID *string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM notification
		WHERE interacted_id = $1::uuid AND notified_id = $2::uuid AND noti_type = $3
		  AND (post_id = $4::uuid OR ($4::uuid IS NULL AND post_id IS NULL))
	`, interactedID, notifiedID, kind, postID)
	return err
}

func (r *PgNotificationRepository) PostAuthor(ctx context.Context, postID string) (string, error) {
	var author string
	err := r.pool.QueryRow(ctx, `SELECT user_id::text FROM post WHERE id = $1::uuid`, postID).Scan(&author)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return author, err
}

func (r *PgNotificationRepository) FollowerIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT follower_id::text FROM follow WHERE following_id = $1::uuid`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
