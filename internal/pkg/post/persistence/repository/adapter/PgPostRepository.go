package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	post "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/persistence/repository/port"
)

type PgPostRepository struct {
	pool *pgxpool.Pool
}

func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

var _ repository.PostRepository = (*PgPostRepository)(nil)

func (r *PgPostRepository) Create(ctx context.Context, p post.Post) (*post.Post, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO post (user_id, media_list, thumbnail, caption, layout, emotion)
		VALUES ($1::uuid, $2, $3, $4, $5, $6)
		RETURNING id::text, created_at
	`, p.UserID, p.MediaList, p.Thumbnail, p.Caption, p.Layout, p.Emotion).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgPostRepository) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, user_id::text, media_list, thumbnail, caption, layout, emotion,
		       created_at, deleted_at, delete_reason
		FROM post
		WHERE id = $1::uuid
	`, id).Scan(&p.ID, &p.UserID, &p.MediaList, &p.Thumbnail, &p.Caption, &p.Layout,
		&p.Emotion, &p.CreatedAt, &p.DeletedAt, &p.DeleteReason)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgPostRepository) ListFeed(ctx context.Context, viewerID string) ([]post.FeedItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id::text, p.media_list, p.caption, p.layout, p.emotion, p.created_at,
		       u.id::text, u.username, u.ava,
		       EXISTS (SELECT 1 FROM "like" l WHERE l.post_id = p.id AND l.user_id = $1::uuid)
		FROM post p
		JOIN "user" u ON u.id = p.user_id
		WHERE p.deleted_at IS NULL
		  AND u.access_failed_count = 0
		ORDER BY p.created_at DESC
	`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		items []post.FeedItem
		index = map[string]int{} // postID -> position in items
		ids   []string
	)
	for rows.Next() {
		var it post.FeedItem
		if err := rows.Scan(&it.ID, &it.MediaList, &it.Caption, &it.Layout, &it.Emotion,
			&it.CreatedAt, &it.User.ID, &it.User.Username, &it.User.Ava, &it.Liked); err != nil {
			return nil, err
		}
		it.Likes = []post.Reaction{}
		it.Tags = []post.TaggedUser{}
		index[it.ID] = len(items)
		items = append(items, it)
		ids = append(ids, it.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	if err := r.attachLikes(ctx, ids, index, items); err != nil {
		return nil, err
	}
	if err := r.attachTags(ctx, ids, index, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PgPostRepository) attachLikes(ctx context.Context, ids []string, index map[string]int, items []post.FeedItem) error {
	rows, err := r.pool.Query(ctx, `
		SELECT post_id::text, react
		FROM "like"
		WHERE post_id = ANY($1::uuid[])
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var postID, react string
		if err := rows.Scan(&postID, &react); err != nil {
			return err
		}
		if i, ok := index[postID]; ok {
			items[i].Likes = append(items[i].Likes, post.Reaction{React: react})
			items[i].LikeCount++
		}
	}
	return rows.Err()
}

func (r *PgPostRepository) attachTags(ctx context.Context, ids []string, index map[string]int, items []post.FeedItem) error {
	rows, err := r.pool.Query(ctx, `
		SELECT t.post_id::text, u.id::text, u.username
		FROM tag t
		JOIN "user" u ON u.id = t.user_id
		WHERE t.post_id = ANY($1::uuid[])
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		var tagged post.TaggedUser
		if err := rows.Scan(&postID, &tagged.ID, &tagged.Username); err != nil {
			return err
		}
		if i, ok := index[postID]; ok {
			items[i].Tags = append(items[i].Tags, tagged)
		}
	}
	return rows.Err()
}

func (r *PgPostRepository) FindReaction(ctx context.Context, postID, userID string) (*string, error) {
	var react string
	err := r.pool.QueryRow(ctx, `
		SELECT react FROM "like"
		WHERE post_id = $1::uuid AND user_id = $2::uuid
	`, postID, userID).Scan(&react)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &react, nil
}

func (r *PgPostRepository) FindDetail(ctx context.Context, id string) (*post.Detail, error) {
	var d post.Detail
	err := r.pool.QueryRow(ctx, `
		SELECT p.id::text, p.caption, p.media_list, p.created_at, p.deleted_at, p.delete_reason,
		       u.id::text, u.username, u.ava,
		       (SELECT count(*) FROM "like" l WHERE l.post_id = p.id)
		FROM post p
		JOIN "user" u ON u.id = p.user_id
		WHERE p.id = $1::uuid
	`, id).Scan(&d.ID, &d.Caption, &d.MediaList, &d.CreatedAt, &d.DeletedAt, &d.DeleteReason,
		&d.User.ID, &d.User.Username, &d.User.Ava, &d.LikeCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, u.id::text, u.username, u.ava, c.comment
		FROM comment c
		JOIN "user" u ON u.id = c.user_id
		WHERE c.post_id = $1::uuid
		ORDER BY c.created_at ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d.Comments = []post.CommentView{}
	for rows.Next() {
		var cv post.CommentView
		if err := rows.Scan(&cv.ID, &cv.User.ID, &cv.User.Username, &cv.User.Ava, &cv.Comment); err != nil {
			return nil, err
		}
		d.Comments = append(d.Comments, cv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgPostRepository) SoftDelete(ctx context.Context, id string, reason *string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE post SET deleted_at = now(), delete_reason = $2
		WHERE id = $1::uuid AND deleted_at IS NULL
	`, id, reason)
	return err
}

func (r *PgPostRepository) CreateTags(ctx context.Context, postID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tag (post_id, user_id)
		SELECT $1::uuid, unnest($2::uuid[])
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userIDs)
	return err
}

func (r *PgPostRepository) ListThumbnails(ctx context.Context, userID string) ([]post.Thumbnail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, thumbnail, media_list
		FROM post
		WHERE user_id = $1::uuid AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var thumbs []post.Thumbnail
	for rows.Next() {
		var (
			t     post.Thumbnail
			media []string
		)
		if err := rows.Scan(&t.ID, &t.Thumbnail, &media); err != nil {
			return nil, err
		}
		t.Multiple = len(media) > 1
		t.ContainVideo = len(media) > 0 && post.IsVideoURL(media[0])
		thumbs = append(thumbs, t)
	}
	return thumbs, rows.Err()
}
