package repository

import (
	"context"

	story "github.com/trang-ptt/INSTARE-BE/internal/pkg/story/application/domain"
)

// StoryRepository persists stories and per-viewer read marks.
type StoryRepository interface {
	Create(ctx context.Context, s story.Story) (*story.Story, error)

	// ListBoxes returns one entry per author with live stories. Authors with
	// at least one story the viewer has not read come first, flagged unread.
	ListBoxes(ctx context.Context, viewerID string) ([]story.Box, error)

	// ListByUser returns a user's live stories, oldest first.
	ListByUser(ctx context.Context, userID string) ([]story.View, error)

	FindRead(ctx context.Context, storyID, userID string) (*story.Read, error)
	CreateRead(ctx context.Context, storyID, userID string) (*story.Read, error)
}
