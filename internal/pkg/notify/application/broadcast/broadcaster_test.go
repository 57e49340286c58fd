package broadcast_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pubsub "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/pubsub/port"
	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/realtime"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/broadcast"
	notify "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/domain"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/usecase"
)

// scriptedSubscriber hands the registered handler a fixed set of payloads,
// then blocks until the context is canceled.
type scriptedSubscriber struct {
	payloads []string
}

func (s *scriptedSubscriber) Subscribe(ctx context.Context, _ string, h pubsub.Handler) error {
	for _, p := range s.payloads {
		h(ctx, p)
	}
	<-ctx.Done()
	return nil
}

// flakySubscriber fails once with a transport error, then delivers.
type flakySubscriber struct {
	inner  *scriptedSubscriber
	failed bool
}

func (s *flakySubscriber) Subscribe(ctx context.Context, channel string, h pubsub.Handler) error {
	if !s.failed {
		s.failed = true
		return errors.New("connection reset")
	}
	return s.inner.Subscribe(ctx, channel, h)
}

type fakeGraph struct {
	authorByPost map[string]string
	followers    map[string][]string
}

func (f *fakeGraph) PostAuthor(_ context.Context, postID string) (string, error) {
	return f.authorByPost[postID], nil
}

func (f *fakeGraph) FollowerIDs(_ context.Context, userID string) ([]string, error) {
	return f.followers[userID], nil
}

// recordingNotiRepo collects created notifications under a lock; the
// broadcaster runs on its own goroutine.
type recordingNotiRepo struct {
	mu      sync.Mutex
	created []notify.Notification
}

func (r *recordingNotiRepo) Create(_ context.Context, n notify.Notification) (*notify.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = "noti"
	r.created = append(r.created, n)
	return &n, nil
}

func (r *recordingNotiRepo) snapshot() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.created...)
}

func (r *recordingNotiRepo) FindByID(context.Context, string) (*notify.Notification, error) {
	panic("not used")
}
func (r *recordingNotiRepo) ListForUser(context.Context, string) ([]notify.View, error) {
	panic("not used")
}
func (r *recordingNotiRepo) MarkRead(context.Context, string) error { panic("not used") }
func (r *recordingNotiRepo) DeleteMatching(context.Context, string, string, notify.Kind, *string) error {
	panic("not used")
}

type nopPusher struct{}

func (nopPusher) Notify(string, realtime.Event) bool { return false }

func runBroadcaster(t *testing.T, sub pubsub.Subscriber, repo *recordingNotiRepo, graph *fakeGraph) {
	t.Helper()
	notifier := usecase.NewNotifyUserUseCase(repo, nopPusher{})
	b := broadcast.NewBroadcaster(sub, graph, notifier, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	// Give the subscriber a moment to drain its script, then stop.
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcaster did not stop")
	}
}

func TestBroadcasterNotifiesEveryFollower(t *testing.T) {
	repo := &recordingNotiRepo{}
	graph := &fakeGraph{
		authorByPost: map[string]string{"post-1": "author"},
		followers:    map[string][]string{"author": {"fan-1", "fan-2"}},
	}

	runBroadcaster(t, &scriptedSubscriber{payloads: []string{"post-1"}}, repo, graph)

	created := repo.snapshot()
	require.Len(t, created, 2)
	for _, n := range created {
		assert.Equal(t, "author", n.InteractedID)
		assert.Equal(t, notify.KindPost, n.Kind)
		require.NotNil(t, n.PostID)
		assert.Equal(t, "post-1", *n.PostID)
	}
	assert.ElementsMatch(t, []string{"fan-1", "fan-2"},
		[]string{created[0].NotifiedID, created[1].NotifiedID})
}

func TestBroadcasterSkipsDeletedPosts(t *testing.T) {
	repo := &recordingNotiRepo{}
	graph := &fakeGraph{authorByPost: map[string]string{}}

	runBroadcaster(t, &scriptedSubscriber{payloads: []string{"gone"}}, repo, graph)

	assert.Empty(t, repo.snapshot())
}

func TestBroadcasterResubscribesAfterTransportFailure(t *testing.T) {
	repo := &recordingNotiRepo{}
	graph := &fakeGraph{
		authorByPost: map[string]string{"post-1": "author"},
		followers:    map[string][]string{"author": {"fan-1"}},
	}
	sub := &flakySubscriber{inner: &scriptedSubscriber{payloads: []string{"post-1"}}}

	notifier := usecase.NewNotifyUserUseCase(repo, nopPusher{})
	b := broadcast.NewBroadcaster(sub, graph, notifier, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	// First attempt fails; the retry (after ~1s backoff) must deliver.
	require.Eventually(t, func() bool {
		return len(repo.snapshot()) == 1
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	<-done
}
