package repository

import (
	"context"

	post "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/application/domain"
)

// PostRepository is the persistence port for posts, tags and feed reads.
// Find methods return (nil, nil) when the row does not exist.
type PostRepository interface {
	Create(ctx context.Context, p post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)

	// ListFeed returns all non-deleted posts from non-banned authors, newest
	// first, with likes, tags and the viewer's liked flag resolved.
	ListFeed(ctx context.Context, viewerID string) ([]post.FeedItem, error)

	// FindReaction returns the viewer's reaction kind on the post, nil when
	// the viewer has not reacted.
	FindReaction(ctx context.Context, postID, userID string) (*string, error)

	// FindDetail returns the single-post view with author, like count and
	// comments resolved. Deleted posts are returned with DeletedAt set.
	FindDetail(ctx context.Context, id string) (*post.Detail, error)

	SoftDelete(ctx context.Context, id string, reason *string) error
	CreateTags(ctx context.Context, postID string, userIDs []string) error

	// ListThumbnails returns the profile grid for a user, newest first.
	ListThumbnails(ctx context.Context, userID string) ([]post.Thumbnail, error)
}
