package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/metrics"
	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/realtime"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/token"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/presentation/middleware"
	chat "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/domain"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/usecase"
	userrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/persistence/repository/port"
)

// GatewayController owns the websocket endpoint. A socket authenticates with
// the same bearer token as the REST API (header or ?token=), gets bound as the
// user's single live session, and may push direct messages over the wire.
type GatewayController struct {
	registry        *realtime.Registry
	tokens          *token.Service
	users           userrepo.UserRepository
	sendUC          *usecase.SendDirectMessageUseCase
	log             *zap.Logger
	inflightTimeout time.Duration
}

func NewGatewayController(registry *realtime.Registry, tokens *token.Service,
	users userrepo.UserRepository, sendUC *usecase.SendDirectMessageUseCase, log *zap.Logger) *GatewayController {
	return &GatewayController{
		registry:        registry,
		tokens:          tokens,
		users:           users,
		sendUC:          sendUC,
		log:             log,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Tokens authenticate the socket, not the Origin header.
		return true
	},
}

type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type inboundMessage struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades the connection, authenticates it, and processes inbound
// frames until the client disconnects.
func (ctl *GatewayController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just log and return.
			ctl.log.Debug("websocket upgrade failed", zap.Error(err))
			return
		}

		userID, err := ctl.authenticate(c.Request)
		if err != nil {
			metrics.SocketRejects.Inc()
			ctl.rejectSocket(ws, err)
			return
		}

		conn := realtime.NewConnection(userID, ws)
		ctl.registry.Bind(conn)
		metrics.SocketConnects.Inc()
		defer func() {
			ctl.registry.Unbind(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		_ = conn.SendEvent(realtime.InitEvent{Message: "Welcome to the live server!"})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.log.Debug("websocket read failed", zap.String("user_id", userID), zap.Error(err))
				return
			}

			var frame inboundEnvelope
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "invalid payload")
				continue
			}

			switch frame.Event {
			case "message":
				ctl.handleMessage(c, conn, frame.Data)
			default:
				ctl.replyError(conn, "unknown event")
			}
		}
	}
}

// authenticate verifies the bearer credential and ensures the account exists
// and is not banned. The upgrade happens before this so failures can be
// reported over the socket itself.
func (ctl *GatewayController) authenticate(r *http.Request) (string, error) {
	raw := middleware.BearerToken(r)
	if raw == "" {
		return "", apperr.Unauthenticated("missing bearer token")
	}
	claims, err := ctl.tokens.Verify(raw)
	if err != nil {
		return "", err
	}
	u, err := ctl.users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", apperr.Unauthenticated("unknown user")
	}
	if u.Banned() {
		return "", apperr.Forbidden("user's BANNED")
	}
	return u.ID, nil
}

// rejectSocket sends an Error frame on the raw socket and closes it. The
// connection is never bound, so nothing has to be unwound.
func (ctl *GatewayController) rejectSocket(ws *websocket.Conn, cause error) {
	if payload, err := realtime.EncodeEvent(realtime.ErrorEvent{Message: cause.Error()}); err == nil {
		_ = ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
		_ = ws.WriteMessage(websocket.TextMessage, payload)
	}
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unauthorized"),
		time.Now().Add(5*time.Second))
	_ = ws.Close()
}

func (ctl *GatewayController) handleMessage(c *gin.Context, conn *realtime.Connection, raw json.RawMessage) {
	var in inboundMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		ctl.replyError(conn, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	_, err := ctl.sendUC.Execute(ctx, usecase.SendDirectMessageInput{
		SenderID:    conn.UserID,
		RecipientID: in.UserID,
		Body:        in.Message,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
	}
}

func (ctl *GatewayController) handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		ctl.log.Error("message delivery failed", zap.String("user_id", conn.UserID), zap.Error(err))
		ctl.replyError(conn, "unexpected persistence error")
	case errors.Is(err, chat.ErrEmptyBody):
		ctl.replyError(conn, "message body is required")
	default:
		ctl.replyError(conn, err.Error())
	}
}

func (ctl *GatewayController) replyError(conn *realtime.Connection, message string) {
	_ = conn.SendEvent(realtime.ErrorEvent{Message: message})
}
