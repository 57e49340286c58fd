package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	story "github.com/trang-ptt/INSTARE-BE/internal/pkg/story/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/story/persistence/repository/port"
)

type PgStoryRepository struct {
	pool *pgxpool.Pool
}

func NewPgStoryRepository(pool *pgxpool.Pool) *PgStoryRepository {
	return &PgStoryRepository{pool: pool}
}

var _ repository.StoryRepository = (*PgStoryRepository)(nil)

func (r *PgStoryRepository) Create(ctx context.Context, s story.Story) (*story.Story, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO story (user_id, media, expired_at)
		VALUES ($1::uuid, $2, $3)
		RETURNING id::text, created_at
	`, s.UserID, s.Media, s.ExpiredAt).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgStoryRepository) ListBoxes(ctx context.Context, viewerID string) ([]story.Box, error) {
	// One row per author with live stories; unread means at least one live
	// story without a read mark from the viewer.
	rows, err := r.pool.Query(ctx, `
		SELECT u.id::text, u.username, u.ava,
		       bool_and(rs.id IS NOT NULL) AS read
		FROM story s
		JOIN "user" u ON u.id = s.user_id
		LEFT JOIN read_story rs ON rs.story_id = s.id AND rs.user_id = $1::uuid
		WHERE s.expired_at >= now()
		GROUP BY u.id, u.username, u.ava
		ORDER BY read ASC, u.username
	`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boxes []story.Box
	for rows.Next() {
		var b story.Box
		if err := rows.Scan(&b.ID, &b.Username, &b.Ava, &b.Read); err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}
	return boxes, rows.Err()
}

func (r *PgStoryRepository) ListByUser(ctx context.Context, userID string) ([]story.View, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id::text, s.media, s.created_at, s.expired_at,
		       u.id::text, u.username, u.ava
		FROM story s
		JOIN "user" u ON u.id = s.user_id
		WHERE s.user_id = $1::uuid AND s.expired_at >= now()
		ORDER BY s.created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []story.View
	for rows.Next() {
		var v story.View
		if err := rows.Scan(&v.ID, &v.Media, &v.CreatedAt, &v.ExpiredAt,
			&v.User.ID, &v.User.Username, &v.User.Ava); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *PgStoryRepository) FindRead(ctx context.Context, storyID, userID string) (*story.Read, error) {
	var rd story.Read
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, story_id::text, user_id::text, read_at
		FROM read_story
		WHERE story_id = $1::uuid AND user_id = $2::uuid
	`, storyID, userID).Scan(&rd.ID, &rd.StoryID, &rd.UserID, &rd.ReadAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *PgStoryRepository) CreateRead(ctx context.Context, storyID, userID string) (*story.Read, error) {
	rd := story.Read{StoryID: storyID, UserID: userID}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO read_story (story_id, user_id)
		VALUES ($1::uuid, $2::uuid)
		RETURNING id::text, read_at
	`, storyID, userID).Scan(&rd.ID, &rd.ReadAt)
	if err != nil {
		return nil, err
	}
	return &rd, nil
}
