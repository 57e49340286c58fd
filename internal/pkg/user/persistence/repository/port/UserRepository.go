package repository

import (
	"context"

	user "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/domain"
)

// UserRepository defines persistence operations for accounts.
// Find methods return (nil, nil) when no row matches; callers decide whether
// absence is a NotFound for their operation.
type UserRepository interface {
	Create(ctx context.Context, email, username, passwordHash string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)

	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateProfile(ctx context.Context, id string, name, bio *string) error
	// UpdateUsername also stamps username_last_changed.
	UpdateUsername(ctx context.Context, id, username string) error
	UpdateAvatar(ctx context.Context, id string, ava *string) error
	Ban(ctx context.Context, id, reason string) error

	Search(ctx context.Context, query string, limit int) ([]user.User, error)
	Admins(ctx context.Context) ([]user.User, error)
	// Counts returns the profile counters: posts, followers, following.
	Counts(ctx context.Context, id string) (posts, followers, following int, err error)
}
