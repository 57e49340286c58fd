package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	user "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/persistence/repository/port"
)

const userColumns = `id::text, email, username, password, name, bio, ava, account_type,
	access_failed_count, ban_reason, username_last_changed, created_at`

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ repository.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) Create(ctx context.Context, email, username, passwordHash string) (*user.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO "user" (email, username, password)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		email, username, passwordHash)
	return scanUser(row)
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findBy(ctx, `id = $1::uuid`, id)
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findBy(ctx, `email = $1`, email)
}

func (r *PgUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findBy(ctx, `username = $1`, username)
}

func (r *PgUserRepository) findBy(ctx context.Context, where string, arg any) (*user.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE `+where, arg)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *PgUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `UPDATE "user" SET password = $2 WHERE id = $1::uuid`, id, passwordHash)
	return err
}

func (r *PgUserRepository) UpdateProfile(ctx context.Context, id string, name, bio *string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE "user" SET name = COALESCE($2, name), bio = COALESCE($3, bio)
		WHERE id = $1::uuid`, id, name, bio)
	return err
}

func (r *PgUserRepository) UpdateUsername(ctx context.Context, id, username string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE "user" SET username = $2, username_last_changed = now()
		WHERE id = $1::uuid`, id, username)
	return err
}

func (r *PgUserRepository) UpdateAvatar(ctx context.Context, id string, ava *string) error {
	_, err := r.pool.Exec(ctx, `UPDATE "user" SET ava = $2 WHERE id = $1::uuid`, id, ava)
	return err
}

func (r *PgUserRepository) Ban(ctx context.Context, id, reason string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE "user" SET access_failed_count = 1, ban_reason = $2
		WHERE id = $1::uuid`, id, reason)
	return err
}

func (r *PgUserRepository) Search(ctx context.Context, query string, limit int) ([]user.User, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM "user"
		WHERE (username ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')
		  AND access_failed_count = 0
		ORDER BY username
		LIMIT $2`, query, limit)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *PgUserRepository) Admins(ctx context.Context) ([]user.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM "user" WHERE account_type = 'ADMIN'`)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *PgUserRepository) Counts(ctx context.Context, id string) (posts, followers, following int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM post WHERE user_id = $1::uuid AND deleted_at IS NULL),
			(SELECT count(*) FROM follow WHERE following_id = $1::uuid),
			(SELECT count(*) FROM follow WHERE follower_id = $1::uuid)
	`, id).Scan(&posts, &followers, &following)
	return
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Name, &u.Bio, &u.Ava,
		&u.AccountType, &u.AccessFailedCount, &u.BanReason, &u.UsernameLastChanged, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]user.User, error) {
	defer rows.Close()
	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
