package repository

import (
	"context"

	interact "github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/application/domain"
)

// InteractRepository persists likes, comments and follows. Find methods
// return (nil, nil) when the row does not exist.
type InteractRepository interface {
	FindLike(ctx context.Context, postID, userID string) (*interact.Like, error)
	CreateLike(ctx context.Context, postID, userID string, react interact.Reaction) (*interact.Like, error)
	UpdateLikeReact(ctx context.Context, likeID string, react interact.Reaction) (*interact.Like, error)
	DeleteLike(ctx context.Context, likeID string) error

	CreateComment(ctx context.Context, postID, userID, text string) (*interact.Comment, error)

	CreateFollow(ctx context.Context, followerID, followingID string) (*interact.Follow, error)
	DeleteFollow(ctx context.Context, followerID, followingID string) error
	FollowExists(ctx context.Context, followerID, followingID string) (bool, error)
}
