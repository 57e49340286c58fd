package usecase_test

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
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/usecase"
	user "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/domain"
)

// fakeChatRepo keeps conversations and messages in memory.
type fakeChatRepo struct {
	conversations map[string]*chat.Conversation // "a|b" -> conversation
	messages      []chat.Message
	readCalls     []string // "convID|senderID"
	nextID        int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{conversations: map[string]*chat.Conversation{}}
}

func (f *fakeChatRepo) key(a, b string) string { return a + "|" + b }

func (f *fakeChatRepo) FindByPair(_ context.Context, a, b string) (*chat.Conversation, error) {
	return f.conversations[f.key(a, b)], nil
}

func (f *fakeChatRepo) CreateByPair(_ context.Context, a, b string) (*chat.Conversation, error) {
	if existing := f.conversations[f.key(a, b)]; existing != nil {
		return existing, nil
	}
	f.nextID++
	conv := &chat.Conversation{
		ID:        fmt.Sprintf("conv-%d", f.nextID),
		UserA:     a,
		UserB:     b,
		CreatedAt: time.Now(),
	}
	f.conversations[f.key(a, b)] = conv
	return conv, nil
}

func (f *fakeChatRepo) SaveMessage(_ context.Context, conversationID, senderID, body string) (*chat.Message, error) {
	f.nextID++
	m := chat.Message{
		ID:             fmt.Sprintf("msg-%d", f.nextID),
		ConversationID: conversationID,
		SenderID:       senderID,
		Message:        body,
		CreatedAt:      time.Now(),
	}
	f.messages = append(f.messages, m)
	return &m, nil
}

func (f *fakeChatRepo) MarkMessagesRead(_ context.Context, conversationID, senderID string) error {
	f.readCalls = append(f.readCalls, conversationID+"|"+senderID)
	return nil
}

func (f *fakeChatRepo) ListMessages(_ context.Context, conversationID string) ([]chat.Message, error) {
	var out []chat.Message
	for i := len(f.messages) - 1; i >= 0; i-- {
		if f.messages[i].ConversationID == conversationID {
			out = append(out, f.messages[i])
		}
	}
	return out, nil
}

func (f *fakeChatRepo) ListContacts(_ context.Context, _ string) ([]chat.Contact, error) {
	return nil, nil
}

func (f *fakeChatRepo) ListUncontacted(_ context.Context, _ string) ([]chat.Contact, error) {
	return nil, nil
}

// fakeUserRepo serves FindByID from a fixed map; the other methods are unused
// by these use cases.
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
func (f *fakeUserRepo) UpdateUsername(context.Context, string, string) error  { panic("not used") }
func (f *fakeUserRepo) UpdateAvatar(context.Context, string, *string) error   { panic("not used") }
func (f *fakeUserRepo) Ban(context.Context, string, string) error             { panic("not used") }
func (f *fakeUserRepo) Search(context.Context, string, int) ([]user.User, error) {
	panic("not used")
}
func (f *fakeUserRepo) Admins(context.Context) ([]user.User, error) { panic("not used") }
func (f *fakeUserRepo) Counts(context.Context, string) (int, int, int, error) {
	panic("not used")
}

// stubPusher records every event, optionally reporting the target offline.
type stubPusher struct {
	events  []realtime.Event
	targets []string
	offline bool
}

func (s *stubPusher) Notify(userID string, e realtime.Event) bool {
	s.targets = append(s.targets, userID)
	s.events = append(s.events, e)
	return !s.offline
}

func TestResolveConversationIsIdempotent(t *testing.T) {
	repo := newFakeChatRepo()
	uc := usecase.NewResolveConversationUseCase(repo)

	first, err := uc.Execute(context.Background(), "user-b", "user-a")
	require.NoError(t, err)

	// Same pair in the opposite order lands on the same conversation.
	second, err := uc.Execute(context.Background(), "user-a", "user-b")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.conversations, 1)
	assert.Less(t, first.UserA, first.UserB)
}

func TestResolveConversationRejectsSelf(t *testing.T) {
	uc := usecase.NewResolveConversationUseCase(newFakeChatRepo())

	_, err := uc.Execute(context.Background(), "user-a", "user-a")
	assert.ErrorIs(t, err, chat.ErrSelfMessage)
}

func newSendUseCase(repo *fakeChatRepo, users *fakeUserRepo, pusher *stubPusher) *usecase.SendDirectMessageUseCase {
	recipient := usecase.NewFindRecipientUseCase(users)
	resolver := usecase.NewResolveConversationUseCase(repo)
	return usecase.NewSendDirectMessageUseCase(repo, recipient, resolver, pusher)
}

func TestSendDirectMessagePersistsAndPushes(t *testing.T) {
	repo := newFakeChatRepo()
	users := &fakeUserRepo{byID: map[string]*user.User{
		"user-b": {ID: "user-b", Username: "bee"},
	}}
	pusher := &stubPusher{}
	uc := newSendUseCase(repo, users, pusher)

	msg, err := uc.Execute(context.Background(), usecase.SendDirectMessageInput{
		SenderID:    "user-a",
		RecipientID: "user-b",
		Body:        "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-a", msg.SenderID)
	assert.Equal(t, "hello", msg.Message)

	// The recipient's earlier messages were marked read before the new write.
	require.Len(t, repo.readCalls, 1)
	assert.Equal(t, msg.ConversationID+"|user-b", repo.readCalls[0])

	require.Len(t, pusher.events, 1)
	assert.Equal(t, []string{"user-b"}, pusher.targets)
	evt, ok := pusher.events[0].(realtime.MessageEvent)
	require.True(t, ok)
	assert.Equal(t, "user-a", evt.SenderID)
	assert.Equal(t, "hello", evt.Message)
}

func TestSendDirectMessageOfflineRecipientStillPersists(t *testing.T) {
	repo := newFakeChatRepo()
	users := &fakeUserRepo{byID: map[string]*user.User{
		"user-b": {ID: "user-b"},
	}}
	uc := newSendUseCase(repo, users, &stubPusher{offline: true})

	_, err := uc.Execute(context.Background(), usecase.SendDirectMessageInput{
		SenderID:    "user-a",
		RecipientID: "user-b",
		Body:        "hello",
	})
	require.NoError(t, err)
	assert.Len(t, repo.messages, 1)
}

func TestSendDirectMessageToSelfIsForbidden(t *testing.T) {
	users := &fakeUserRepo{byID: map[string]*user.User{
		"user-a": {ID: "user-a"},
	}}
	uc := newSendUseCase(newFakeChatRepo(), users, &stubPusher{})

	_, err := uc.Execute(context.Background(), usecase.SendDirectMessageInput{
		SenderID:    "user-a",
		RecipientID: "user-a",
		Body:        "hi me",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))
}

func TestSendDirectMessageUnknownRecipient(t *testing.T) {
	uc := newSendUseCase(newFakeChatRepo(), &fakeUserRepo{byID: map[string]*user.User{}}, &stubPusher{})

	_, err := uc.Execute(context.Background(), usecase.SendDirectMessageInput{
		SenderID:    "user-a",
		RecipientID: "ghost",
		Body:        "anyone there",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestSendDirectMessageRejectsEmptyBody(t *testing.T) {
	uc := newSendUseCase(newFakeChatRepo(), &fakeUserRepo{}, &stubPusher{})

	_, err := uc.Execute(context.Background(), usecase.SendDirectMessageInput{
		SenderID:    "user-a",
		RecipientID: "user-b",
		Body:        "   ",
	})
	assert.ErrorIs(t, err, chat.ErrEmptyBody)
}
