package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/realtime"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/token"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/persistence/repository/adapter"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/presentation/controller"
	userrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/persistence/repository/port"
)

// RegisterRoutes binds the messaging endpoints. The caller mounts the group
// behind the auth middleware; the websocket endpoint is registered separately
// because it authenticates inside the upgrade.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, users userrepo.UserRepository) {
	repo := repoAdapter.NewPgChatRepository(pool)
	recipient := usecase.NewFindRecipientUseCase(users)
	resolver := usecase.NewResolveConversationUseCase(repo)

	ctl := controller.NewChatController(
		usecase.NewEnterConversationUseCase(repo, recipient, resolver),
		usecase.NewListContactsUseCase(repo),
	)

	g.POST("/chat/enterConversation/:userId", ctl.EnterConversation())
	g.GET("/chat/getListContact", ctl.GetListContact())
}

// RegisterGateway mounts the websocket endpoint on the root engine.
func RegisterGateway(e *gin.Engine, pool *pgxpool.Pool, registry *realtime.Registry,
	tokens *token.Service, users userrepo.UserRepository, log *zap.Logger) {
	repo := repoAdapter.NewPgChatRepository(pool)
	recipient := usecase.NewFindRecipientUseCase(users)
	resolver := usecase.NewResolveConversationUseCase(repo)
	sendUC := usecase.NewSendDirectMessageUseCase(repo, recipient, resolver, registry)

	gateway := controller.NewGatewayController(registry, tokens, users, sendUC, log)
	e.GET("/ws", gateway.Handle())
}
