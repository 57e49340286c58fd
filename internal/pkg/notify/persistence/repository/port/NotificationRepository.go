package repository

import (
	"context"

	notify "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/domain"
)

// NotificationRepository defines persistence for durable notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n notify.Notification) (*notify.Notification, error)
	FindByID(ctx context.Context, id string) (*notify.Notification, error)
	ListForUser(ctx context.Context, userID string) ([]notify.View, error)
	MarkRead(ctx context.Context, id string) error
	// DeleteMatching removes notifications produced by an interaction that was
	// undone (unlike, unfollow). A nil postID matches rows without a post.
	DeleteMatching(ctx context.Context, interactedID, notifiedID string, kind notify.Kind, postID *string) error
}

// BroadcastRepository holds the queries the post broadcast subscriber needs.
type BroadcastRepository interface {
	// PostAuthor returns the author of a post, or "" when the post is gone.
	PostAuthor(ctx context.Context, postID string) (string, error)
	// FollowerIDs lists the users following userID.
	FollowerIDs(ctx context.Context, userID string) ([]string, error)
}
