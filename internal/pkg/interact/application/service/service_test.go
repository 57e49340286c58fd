package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/realtime"
	chat "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/domain"
	chatuc "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/usecase"
	interact "github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/application/domain"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/application/service"
	notify "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/domain"
	notifyuc "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/usecase"
	post "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/application/domain"
	user "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/domain"
)

type fakeInteractRepo struct {
	likes    map[string]*interact.Like // "post|user"
	follows  map[string]bool           // "follower|following"
	comments []interact.Comment
	nextID   int
}

func newFakeInteractRepo() *fakeInteractRepo {
	return &fakeInteractRepo{likes: map[string]*interact.Like{}, follows: map[string]bool{}}
}

func (f *fakeInteractRepo) id() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeInteractRepo) FindLike(_ context.Context, postID, userID string) (*interact.Like, error) {
	return f.likes[postID+"|"+userID], nil
}

func (f *fakeInteractRepo) CreateLike(_ context.Context, postID, userID string, react interact.Reaction) (*interact.Like, error) {
	l := &interact.Like{ID: f.id(), PostID: postID, UserID: userID, React: react, CreatedAt: time.Now()}
	f.likes[postID+"|"+userID] = l
	return l, nil
}

func (f *fakeInteractRepo) UpdateLikeReact(_ context.Context, likeID string, react interact.Reaction) (*interact.Like, error) {
	for _, l := range f.likes {
		if l.ID == likeID {
			l.React = react
			return l, nil
		}
	}
	return nil, fmt.Errorf("like %s not found", likeID)
}

func (f *fakeInteractRepo) DeleteLike(_ context.Context, likeID string) error {
	for k, l := range f.likes {
		if l.ID == likeID {
			delete(f.likes, k)
			return nil
		}
	}
	return nil
}

func (f *fakeInteractRepo) CreateComment(_ context.Context, postID, userID, text string) (*interact.Comment, error) {
	c := interact.Comment{ID: f.id(), PostID: postID, UserID: userID, Comment: text, CreatedAt: time.Now()}
	f.comments = append(f.comments, c)
	return &c, nil
}

func (f *fakeInteractRepo) CreateFollow(_ context.Context, followerID, followingID string) (*interact.Follow, error) {
	f.follows[followerID+"|"+followingID] = true
	return &interact.Follow{ID: f.id(), FollowerID: followerID, FollowingID: followingID, CreatedAt: time.Now()}, nil
}

func (f *fakeInteractRepo) DeleteFollow(_ context.Context, followerID, followingID string) error {
	delete(f.follows, followerID+"|"+followingID)
	return nil
}

func (f *fakeInteractRepo) FollowExists(_ context.Context, followerID, followingID string) (bool, error) {
	return f.follows[followerID+"|"+followingID], nil
}

type fakePostRepo struct {
	byID map[string]*post.Post
}

func (f *fakePostRepo) FindByID(_ context.Context, id string) (*post.Post, error) {
	return f.byID[id], nil
}

func (f *fakePostRepo) Create(context.Context, post.Post) (*post.Post, error) { panic("not used") }
func (f *fakePostRepo) ListFeed(context.Context, string) ([]post.FeedItem, error) {
	panic("not used")
}
func (f *fakePostRepo) FindReaction(context.Context, string, string) (*string, error) {
	panic("not used")
}
func (f *fakePostRepo) FindDetail(context.Context, string) (*post.Detail, error) {
	panic("not used")
}
func (f *fakePostRepo) SoftDelete(context.Context, string, *string) error { panic("not used") }
func (f *fakePostRepo) CreateTags(context.Context, string, []string) error {
	panic("not used")
}
func (f *fakePostRepo) ListThumbnails(context.Context, string) ([]post.Thumbnail, error) {
	panic("not used")
}

type fakeUserRepo struct {
	byID map[string]*user.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) Create(context.Context, string, string, string) (*user.User, error) {
	panic("not used")
}
func (f *fakeUserRepo) FindByEmail(context.Context, string) (*user.User, error)    { panic("not used") }
func (f *fakeUserRepo) FindByUsername(context.Context, string) (*user.User, error) { panic("not used") }
func (f *fakeUserRepo) UpdatePassword(context.Context, string, string) error       { panic("not used") }
func (f *fakeUserRepo) UpdateProfile(context.Context, string, *string, *string) error {
	panic("not used")
}
func (f *fakeUserRepo) UpdateUsername(context.Context, string, string) error { panic("not used") }
func (f *fakeUserRepo) UpdateAvatar(context.Context, string, *string) error  { panic("not used") }
func (f *fakeUserRepo) Ban(context.Context, string, string) error            { panic("not used") }
func (f *fakeUserRepo) Search(context.Context, string, int) ([]user.User, error) {
	panic("not used")
}
func (f *fakeUserRepo) Admins(context.Context) ([]user.User, error) { panic("not used") }
func (f *fakeUserRepo) Counts(context.Context, string) (int, int, int, error) {
	panic("not used")
}

type fakeNotiRepo struct {
	created []notify.Notification
	deleted []string // "interacted|notified|kind"
	read    []string
	nextID  int
}

func (f *fakeNotiRepo) Create(_ context.Context, n notify.Notification) (*notify.Notification, error) {
	f.nextID++
	n.ID = fmt.Sprintf("noti-%d", f.nextID)
	n.CreatedAt = time.Now()
	f.created = append(f.created, n)
	return &n, nil
}

func (f *fakeNotiRepo) FindByID(_ context.Context, id string) (*notify.Notification, error) {
	for i := range f.created {
		if f.created[i].ID == id {
			n := f.created[i]
			return &n, nil
		}
	}
	return nil, nil
}

func (f *fakeNotiRepo) ListForUser(context.Context, string) ([]notify.View, error) {
	panic("not used")
}

func (f *fakeNotiRepo) MarkRead(_ context.Context, id string) error {
	f.read = append(f.read, id)
	return nil
}

func (f *fakeNotiRepo) DeleteMatching(_ context.Context, interactedID, notifiedID string, kind notify.Kind, _ *string) error {
	f.deleted = append(f.deleted, interactedID+"|"+notifiedID+"|"+string(kind))
	return nil
}

type nopPusher struct{}

func (nopPusher) Notify(string, realtime.Event) bool { return false }

// fakeChatRepo backs SharePost's direct message path.
type fakeChatRepo struct {
	messages []chat.Message
}

func (f *fakeChatRepo) FindByPair(context.Context, string, string) (*chat.Conversation, error) {
	return nil, nil
}

func (f *fakeChatRepo) CreateByPair(_ context.Context, a, b string) (*chat.Conversation, error) {
	return &chat.Conversation{ID: "conv-1", UserA: a, UserB: b, CreatedAt: time.Now()}, nil
}

func (f *fakeChatRepo) SaveMessage(_ context.Context, conversationID, senderID, body string) (*chat.Message, error) {
	m := chat.Message{ID: "msg-1", ConversationID: conversationID, SenderID: senderID, Message: body, CreatedAt: time.Now()}
	f.messages = append(f.messages, m)
	return &m, nil
}

func (f *fakeChatRepo) MarkMessagesRead(context.Context, string, string) error { return nil }
func (f *fakeChatRepo) ListMessages(context.Context, string) ([]chat.Message, error) {
	return nil, nil
}
func (f *fakeChatRepo) ListContacts(context.Context, string) ([]chat.Contact, error) {
	return nil, nil
}
func (f *fakeChatRepo) ListUncontacted(context.Context, string) ([]chat.Contact, error) {
	return nil, nil
}

type fixture struct {
	svc   *service.Service
	repo  *fakeInteractRepo
	notis *fakeNotiRepo
	chats *fakeChatRepo
}

func newFixture(posts map[string]*post.Post, users map[string]*user.User) *fixture {
	repo := newFakeInteractRepo()
	notis := &fakeNotiRepo{}
	chats := &fakeChatRepo{}
	userRepo := &fakeUserRepo{byID: users}
	notifier := notifyuc.NewNotifyUserUseCase(notis, nopPusher{})
	sender := chatuc.NewSendDirectMessageUseCase(chats,
		chatuc.NewFindRecipientUseCase(userRepo),
		chatuc.NewResolveConversationUseCase(chats),
		nopPusher{})
	return &fixture{
		svc:   service.NewService(repo, &fakePostRepo{byID: posts}, userRepo, notis, notifier, sender),
		repo:  repo,
		notis: notis,
		chats: chats,
	}
}

func TestLikePostNotifiesAuthor(t *testing.T) {
	f := newFixture(map[string]*post.Post{"post-1": {ID: "post-1", UserID: "author"}}, nil)

	res, err := f.svc.LikePost(context.Background(), "fan", "post-1", "LAUGH")
	require.NoError(t, err)
	assert.Equal(t, interact.ReactionLaugh, res.Like.React)
	require.NotNil(t, res.Noti)
	assert.Equal(t, "fan", res.Noti.InteractedID)
	assert.Equal(t, "author", res.Noti.NotifiedID)
	assert.Equal(t, notify.KindLike, res.Noti.Kind)
}

func TestLikePostUnknownReactionDefaultsToLove(t *testing.T) {
	f := newFixture(map[string]*post.Post{"post-1": {ID: "post-1", UserID: "author"}}, nil)

	res, err := f.svc.LikePost(context.Background(), "fan", "post-1", "SPARKLE")
	require.NoError(t, err)
	assert.Equal(t, interact.ReactionLove, res.Like.React)
}

func TestLikePostRepeatUpdatesReactWithoutSecondNoti(t *testing.T) {
	f := newFixture(map[string]*post.Post{"post-1": {ID: "post-1", UserID: "author"}}, nil)

	first, err := f.svc.LikePost(context.Background(), "fan", "post-1", "LOVE")
	require.NoError(t, err)

	second, err := f.svc.LikePost(context.Background(), "fan", "post-1", "SAD")
	require.NoError(t, err)
	assert.Equal(t, first.Like.ID, second.Like.ID)
	assert.Equal(t, interact.ReactionSad, second.Like.React)
	assert.Nil(t, second.Noti)
	assert.Len(t, f.notis.created, 1)
}

func TestLikeOwnPostDoesNotNotify(t *testing.T) {
	f := newFixture(map[string]*post.Post{"post-1": {ID: "post-1", UserID: "author"}}, nil)

	res, err := f.svc.LikePost(context.Background(), "author", "post-1", "LOVE")
	require.NoError(t, err)
	assert.Nil(t, res.Noti)
	assert.Empty(t, f.notis.created)
}

func TestDislikePostRemovesLikeAndNoti(t *testing.T) {
	f := newFixture(map[string]*post.Post{"post-1": {ID: "post-1", UserID: "author"}}, nil)
	_, err := f.svc.LikePost(context.Background(), "fan", "post-1", "LOVE")
	require.NoError(t, err)

	msg, err := f.svc.DislikePost(context.Background(), "fan", "post-1")
	require.NoError(t, err)
	assert.Equal(t, "Like and noti removed", msg)
	assert.Empty(t, f.repo.likes)
	assert.Equal(t, []string{"fan|author|LIKE"}, f.notis.deleted)
}

func TestDislikePostWithoutLike(t *testing.T) {
	f := newFixture(map[string]*post.Post{"post-1": {ID: "post-1", UserID: "author"}}, nil)

	_, err := f.svc.DislikePost(context.Background(), "fan", "post-1")
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))
	assert.EqualError(t, err, "You haven't liked this post yet")
}

func TestCommentNotifiesAuthor(t *testing.T) {
	f := newFixture(map[string]*post.Post{"post-1": {ID: "post-1", UserID: "author"}}, nil)

	res, err := f.svc.Comment(context.Background(), "fan", "post-1", "nice shot")
	require.NoError(t, err)
	assert.Equal(t, "nice shot", res.Cmt.Comment)
	require.NotNil(t, res.Noti)
	assert.Equal(t, notify.KindComment, res.Noti.Kind)
}

func TestCommentOnOwnPostSkipsNoti(t *testing.T) {
	f := newFixture(map[string]*post.Post{"post-1": {ID: "post-1", UserID: "author"}}, nil)

	res, err := f.svc.Comment(context.Background(), "author", "post-1", "self reply")
	require.NoError(t, err)
	assert.Nil(t, res.Noti)
}

func TestFollowUser(t *testing.T) {
	f := newFixture(nil, map[string]*user.User{"target": {ID: "target"}})

	res, err := f.svc.FollowUser(context.Background(), "fan", "target")
	require.NoError(t, err)
	assert.Equal(t, "fan", res.Follow.FollowerID)
	assert.Equal(t, "target", res.Follow.FollowingID)
	require.NotNil(t, res.Noti)
	assert.Equal(t, notify.KindFollow, res.Noti.Kind)

	followed, err := f.svc.CheckIfUserFollowed(context.Background(), "fan", "target")
	require.NoError(t, err)
	assert.True(t, followed)
}

func TestFollowUserRejections(t *testing.T) {
	f := newFixture(nil, map[string]*user.User{"target": {ID: "target"}})

	_, err := f.svc.FollowUser(context.Background(), "fan", "fan")
	assert.EqualError(t, err, "You can't follow yourself")

	_, err = f.svc.FollowUser(context.Background(), "fan", "ghost")
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.svc.FollowUser(context.Background(), "fan", "target")
	require.NoError(t, err)
	_, err = f.svc.FollowUser(context.Background(), "fan", "target")
	assert.EqualError(t, err, "You followed this user")
}

func TestUnfollowUser(t *testing.T) {
	f := newFixture(nil, map[string]*user.User{"target": {ID: "target"}})
	_, err := f.svc.FollowUser(context.Background(), "fan", "target")
	require.NoError(t, err)

	msg, err := f.svc.UnfollowUser(context.Background(), "fan", "target")
	require.NoError(t, err)
	assert.Equal(t, "Follow and noti deleted", msg)
	assert.Equal(t, []string{"fan|target|FOLLOW"}, f.notis.deleted)

	_, err = f.svc.UnfollowUser(context.Background(), "fan", "target")
	assert.EqualError(t, err, "You didn't follow this user")
}

func TestReadNoti(t *testing.T) {
	f := newFixture(map[string]*post.Post{"post-1": {ID: "post-1", UserID: "author"}}, nil)
	res, err := f.svc.LikePost(context.Background(), "fan", "post-1", "LOVE")
	require.NoError(t, err)

	noti, err := f.svc.ReadNoti(context.Background(), "author", res.Noti.ID)
	require.NoError(t, err)
	assert.True(t, noti.Read)
	assert.Equal(t, []string{res.Noti.ID}, f.notis.read)

	_, err = f.svc.ReadNoti(context.Background(), "fan", res.Noti.ID)
	assert.EqualError(t, err, "Not your noti")

	_, err = f.svc.ReadNoti(context.Background(), "author", "missing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestSharePostSendsDirectMessage(t *testing.T) {
	f := newFixture(nil, map[string]*user.User{"friend": {ID: "friend"}})

	msg, err := f.svc.SharePost(context.Background(), "fan", "friend", "https://instare.app/post/post-1")
	require.NoError(t, err)
	assert.Equal(t, "Message sent", msg)

	require.Len(t, f.chats.messages, 1)
	assert.Equal(t, "fan", f.chats.messages[0].SenderID)
	assert.Equal(t, "https://instare.app/post/post-1", f.chats.messages[0].Message)
}
