package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	interact "github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/persistence/repository/port"
)

type PgInteractRepository struct {
	pool *pgxpool.Pool
}

func NewPgInteractRepository(pool *pgxpool.Pool) *PgInteractRepository {
	return &PgInteractRepository{pool: pool}
}

var _ repository.InteractRepository = (*PgInteractRepository)(nil)

func (r *PgInteractRepository) FindLike(ctx context.Context, postID, userID string) (*interact.Like, error) {
	var l interact.Like
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, post_id::text, user_id::text, react, created_at
		FROM "like"
		WHERE post_id = $1::uuid AND user_id = $2::uuid
	`, postID, userID).Scan(&l.ID, &l.PostID, &l.UserID, &l.React, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PgInteractRepository) CreateLike(ctx context.Context, postID, userID string, react interact.Reaction) (*interact.Like, error) {
	l := interact.Like{PostID: postID, UserID: userID, React: react}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO "like" (post_id, user_id, react)
		VALUES ($1::uuid, $2::uuid, $3)
		RETURNING id::text, created_at
	`, postID, userID, string(react)).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PgInteractRepository) UpdateLikeReact(ctx context.Context, likeID string, react interact.Reaction) (*interact.Like, error) {
	var l interact.Like
	err := r.pool.QueryRow(ctx, `
		UPDATE "like" SET react = $2
		WHERE id = $1::uuid
		RETURNING id::text, post_id::text, user_id::text, react, created_at
	`, likeID, string(react)).Scan(&l.ID, &l.PostID, &l.UserID, &l.React, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PgInteractRepository) DeleteLike(ctx context.Context, likeID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM "like" WHERE id = $1::uuid`, likeID)
	return err
}

func (r *PgInteractRepository) CreateComment(ctx context.Context, postID, userID, text string) (*interact.Comment, error) {
	c := interact.Comment{PostID: postID, UserID: userID, Comment: text}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comment (post_id, user_id, comment)
		VALUES ($1::uuid, $2::uuid, $3)
		RETURNING id::text, created_at
	`, postID, userID, text).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgInteractRepository) CreateFollow(ctx context.Context, followerID, followingID string) (*interact.Follow, error) {
	f := interact.Follow{FollowerID: followerID, FollowingID: followingID}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO follow (follower_id, following_id)
		VALUES ($1::uuid, $2::uuid)
		RETURNING id::text, created_at
	`, followerID, followingID).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PgInteractRepository) DeleteFollow(ctx context.Context, followerID, followingID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM follow
		WHERE follower_id = $1::uuid AND following_id = $2::uuid
	`, followerID, followingID)
	return err
}

func (r *PgInteractRepository) FollowExists(ctx context.Context, followerID, followingID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follow
			WHERE follower_id = $1::uuid AND following_id = $2::uuid
		)
	`, followerID, followingID).Scan(&exists)
	return exists, err
}
