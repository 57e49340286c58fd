package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/realtime"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/token"
	chat "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/domain"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/usecase"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/presentation/controller"
	user "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/domain"
)

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

type fakeChatRepo struct{}

func (fakeChatRepo) FindByPair(context.Context, string, string) (*chat.Conversation, error) {
	return nil, nil
}
func (fakeChatRepo) CreateByPair(_ context.Context, a, b string) (*chat.Conversation, error) {
	return &chat.Conversation{ID: "conv-1", UserA: a, UserB: b}, nil
}
func (fakeChatRepo) SaveMessage(_ context.Context, conversationID, senderID, body string) (*chat.Message, error) {
	return &chat.Message{ID: "msg-1", ConversationID: conversationID, SenderID: senderID, Message: body, CreatedAt: time.Now()}, nil
}
func (fakeChatRepo) MarkMessagesRead(context.Context, string, string) error { return nil }
func (fakeChatRepo) ListMessages(context.Context, string) ([]chat.Message, error) {
	return nil, nil
}
func (fakeChatRepo) ListContacts(context.Context, string) ([]chat.Contact, error) {
	return nil, nil
}
func (fakeChatRepo) ListUncontacted(context.Context, string) ([]chat.Contact, error) {
	return nil, nil
}

type envelope struct {
	Event string `json:"event"`
	Data  struct {
		Message string `json:"message"`
	} `json:"data"`
}

func gatewayServer(t *testing.T, registry *realtime.Registry, tokens *token.Service, users *fakeUserRepo) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := fakeChatRepo{}
	sendUC := usecase.NewSendDirectMessageUseCase(repo,
		usecase.NewFindRecipientUseCase(users),
		usecase.NewResolveConversationUseCase(repo),
		registry)
	ctl := controller.NewGatewayController(registry, tokens, users, sendUC, zap.NewNop())

	r := gin.New()
	r.GET("/ws", ctl.Handle())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, query string, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	ws, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func readEnvelope(t *testing.T, ws *websocket.Conn) envelope {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := ws.ReadMessage()
	require.NoError(t, err)
	var e envelope
	require.NoError(t, json.Unmarshal(payload, &e))
	return e
}

func TestGatewayRejectsMissingToken(t *testing.T) {
	registry := realtime.NewRegistry()
	defer registry.Close()
	srv := gatewayServer(t, registry, token.NewService("test-secret"), &fakeUserRepo{byID: map[string]*user.User{}})

	ws := dial(t, srv, "", nil)

	e := readEnvelope(t, ws)
	assert.Equal(t, "Error", e.Event)
	assert.Equal(t, "missing bearer token", e.Data.Message)

	// The server closes right after the rejection; nothing was bound.
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := ws.ReadMessage()
	assert.Error(t, err)
}

func TestGatewayRejectsInvalidToken(t *testing.T) {
	registry := realtime.NewRegistry()
	defer registry.Close()
	srv := gatewayServer(t, registry, token.NewService("test-secret"), &fakeUserRepo{byID: map[string]*user.User{}})

	ws := dial(t, srv, "?token=garbage", nil)

	e := readEnvelope(t, ws)
	assert.Equal(t, "Error", e.Event)
}

func TestGatewayRejectsBannedUser(t *testing.T) {
	registry := realtime.NewRegistry()
	defer registry.Close()
	tokens := token.NewService("test-secret")
	users := &fakeUserRepo{byID: map[string]*user.User{
		"user-1": {ID: "user-1", AccessFailedCount: 1},
	}}
	srv := gatewayServer(t, registry, tokens, users)

	tok, err := tokens.Sign("user-1", "user@example.com")
	require.NoError(t, err)
	ws := dial(t, srv, "?token="+tok, nil)

	e := readEnvelope(t, ws)
	assert.Equal(t, "Error", e.Event)
	assert.Equal(t, "user's BANNED", e.Data.Message)
	assert.Nil(t, registry.Lookup("user-1"))
}

func TestGatewayBindsAndGreetsAuthenticatedUser(t *testing.T) {
	registry := realtime.NewRegistry()
	defer registry.Close()
	tokens := token.NewService("test-secret")
	users := &fakeUserRepo{byID: map[string]*user.User{
		"user-1": {ID: "user-1"},
	}}
	srv := gatewayServer(t, registry, tokens, users)

	tok, err := tokens.Sign("user-1", "user@example.com")
	require.NoError(t, err)
	header := http.Header{"Authorization": []string{"Bearer " + tok}}
	ws := dial(t, srv, "", header)

	e := readEnvelope(t, ws)
	assert.Equal(t, "init", e.Event)
	assert.Equal(t, "Welcome to the live server!", e.Data.Message)
	assert.NotNil(t, registry.Lookup("user-1"))
}
