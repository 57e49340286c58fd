package service

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
	pubsub "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/pubsub/port"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/broadcast"
	notify "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/domain"
	notifyuc "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/usecase"
	post "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/persistence/repository/port"
)

const maxMediaPerPost = 10

// Service implements the post operations: creation with tag fan-out and
// follower broadcast, the feed, reaction lookup and soft deletion.
type Service struct {
	repo     repository.PostRepository
	notifier *notifyuc.NotifyUserUseCase
	pub      pubsub.Publisher
	log      *zap.Logger
}

func NewService(repo repository.PostRepository, notifier *notifyuc.NotifyUserUseCase,
	pub pubsub.Publisher, log *zap.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, pub: pub, log: log}
}

// CreatePostInput is the payload for a new post. Media arrive as URLs; the
// first one doubles as the profile-grid thumbnail.
type CreatePostInput struct {
	MediaList     []string
	Caption       *string
	Layout        int
	Emotion       *string
	TagUserIDList []string
}

func (s *Service) CreatePost(ctx context.Context, userID string, in CreatePostInput) (*post.Post, error) {
	if len(in.MediaList) == 0 {
		return nil, apperr.Forbidden("A media is required")
	}
	if len(in.MediaList) > maxMediaPerPost {
		return nil, apperr.Forbidden("Maximum of 10 files")
	}
	layout := in.Layout
	if layout < 1 {
		layout = 1
	}

	created, err := s.repo.Create(ctx, post.Post{
		UserID:    userID,
		MediaList: in.MediaList,
		Thumbnail: &in.MediaList[0],
		Caption:   in.Caption,
		Layout:    layout,
		Emotion:   in.Emotion,
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	tagged := lo.Uniq(lo.Without(in.TagUserIDList, userID))
	if len(tagged) > 0 {
		if err := s.repo.CreateTags(ctx, created.ID, tagged); err != nil {
			return nil, fmt.Errorf("create tags: %w", err)
		}
		for _, taggedID := range tagged {
			if _, err := s.notifier.Execute(ctx, notifyuc.NotifyUserInput{
				InteractedID: userID,
				NotifiedID:   taggedID,
				Kind:         notify.KindTag,
				PostID:       &created.ID,
			}); err != nil {
				s.log.Error("tag notification failed",
					zap.String("postId", created.ID), zap.String("taggedId", taggedID), zap.Error(err))
			}
		}
	}

	// Follower fan-out happens off the request path; the subscriber picks the
	// id up and notifies each follower.
	if err := s.pub.Publish(ctx, broadcast.Channel, created.ID); err != nil {
		s.log.Error("post broadcast publish failed", zap.String("postId", created.ID), zap.Error(err))
	}

	return created, nil
}

func (s *Service) GetAllPosts(ctx context.Context, viewerID string) ([]post.FeedItem, error) {
	return s.repo.ListFeed(ctx, viewerID)
}

// CheckIfUserLikePost returns the viewer's reaction kind, or nil when the
// viewer has not reacted to the post.
func (s *Service) CheckIfUserLikePost(ctx context.Context, viewerID, postID string) (*string, error) {
	return s.repo.FindReaction(ctx, postID, viewerID)
}

func (s *Service) DeletePost(ctx context.Context, userID, postID string) error {
	p, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("load post: %w", err)
	}
	if p == nil {
		return apperr.Forbidden("Post not exist")
	}
	if p.UserID != userID {
		return apperr.Forbidden("You can't delete other people's post")
	}
	if p.Deleted() {
		return apperr.Forbidden("Post already deleted")
	}
	return s.repo.SoftDelete(ctx, postID, nil)
}
