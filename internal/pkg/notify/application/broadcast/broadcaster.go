package broadcast

import (
	"context"
	"time"

	"go.uber.org/zap"

	pubsub "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/pubsub/port"
	notify "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/domain"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/usecase"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/persistence/repository/port"
)

// Channel is the pub/sub channel carrying post ids of freshly created posts.
const Channel = "instare:post"

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Broadcaster is the single process-wide subscriber translating "post created"
// events into per-follower notifications. It decouples the post write path
// from the fan-out so a large follower list never blocks the creating request.
//
// Delivery is at-most-once: events published while the subscription is down
// are lost, which is acceptable because the durable feed query does not depend
// on notifications.
type Broadcaster struct {
	sub      pubsub.Subscriber
	repo     repository.BroadcastRepository
	notifier *usecase.NotifyUserUseCase
	log      *zap.Logger
}

func NewBroadcaster(sub pubsub.Subscriber, repo repository.BroadcastRepository, notifier *usecase.NotifyUserUseCase, log *zap.Logger) *Broadcaster {
	return &Broadcaster{sub: sub, repo: repo, notifier: notifier, log: log}
}

// Run subscribes and consumes until ctx is canceled. The subscription is
// supervised: on transport failure it re-subscribes with exponential backoff.
func (b *Broadcaster) Run(ctx context.Context) {
	backoff := initialBackoff
	for {
		err := b.sub.Subscribe(ctx, Channel, b.handlePost)
		if err == nil || ctx.Err() != nil {
			return
		}
		b.log.Warn("post broadcast subscription lost, retrying",
			zap.Error(err), zap.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *Broadcaster) handlePost(ctx context.Context, postID string) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	author, err := b.repo.PostAuthor(ctx, postID)
	if err != nil {
		b.log.Error("post broadcast: load author", zap.String("postId", postID), zap.Error(err))
		return
	}
	if author == "" {
		// Post deleted between publish and consume; nothing to announce.
		return
	}

	followers, err := b.repo.FollowerIDs(ctx, author)
	if err != nil {
		b.log.Error("post broadcast: load followers", zap.String("postId", postID), zap.Error(err))
		return
	}

	for _, followerID := range followers {
		_, err := b.notifier.Execute(ctx, usecase.NotifyUserInput{
			InteractedID: author,
			NotifiedID:   followerID,
			Kind:         notify.KindPost,
			PostID:       &postID,
		})
		if err != nil {
			b.log.Error("post broadcast: notify follower",
				zap.String("postId", postID), zap.String("followerId", followerID), zap.Error(err))
		}
	}
}
