package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	cacheport "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/cache/port"
	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/metrics"
	pubsubport "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/pubsub/port"
	qport "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/queue/port"
	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/realtime"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/otp"
	authsvc "github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/token"
	authhttp "github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/presentation/http"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/presentation/middleware"
	chatuc "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/usecase"
	chatadapter "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/persistence/repository/adapter"
	chathttp "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/presentation/http"
	exploresvc "github.com/trang-ptt/INSTARE-BE/internal/pkg/explore/application/service"
	explorehttp "github.com/trang-ptt/INSTARE-BE/internal/pkg/explore/presentation/http"
	interactsvc "github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/application/service"
	interactadapter "github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/persistence/repository/adapter"
	interacthttp "github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/presentation/http"
	notifyuc "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/usecase"
	notifyadapter "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/persistence/repository/adapter"
	postsvc "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/application/service"
	postadapter "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/persistence/repository/adapter"
	posthttp "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/presentation/http"
	reportsvc "github.com/trang-ptt/INSTARE-BE/internal/pkg/report/application/service"
	reportadapter "github.com/trang-ptt/INSTARE-BE/internal/pkg/report/persistence/repository/adapter"
	reporthttp "github.com/trang-ptt/INSTARE-BE/internal/pkg/report/presentation/http"
	storysvc "github.com/trang-ptt/INSTARE-BE/internal/pkg/story/application/service"
	storyadapter "github.com/trang-ptt/INSTARE-BE/internal/pkg/story/persistence/repository/adapter"
	storyhttp "github.com/trang-ptt/INSTARE-BE/internal/pkg/story/presentation/http"
	usersvc "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/service"
	useradapter "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/persistence/repository/adapter"
	userhttp "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/presentation/http"
)

// Deps carries the process-wide infrastructure handed down to every context.
type Deps struct {
	Pool     *pgxpool.Pool
	Registry *realtime.Registry
	Tokens   *token.Service
	Cache    cacheport.Cache
	Queue    qport.Client
	Broker   pubsubport.Broker
	Log      *zap.Logger
}

// RegisterRoutes wires repositories, services and controllers and mounts
// every route on the engine. Endpoints keep their historical paths at the
// root, so clients migrate without URL changes.
func RegisterRoutes(r *gin.Engine, d Deps) {
	users := useradapter.NewPgUserRepository(d.Pool)
	posts := postadapter.NewPgPostRepository(d.Pool)
	notis := notifyadapter.NewPgNotificationRepository(d.Pool)
	interacts := interactadapter.NewPgInteractRepository(d.Pool)
	stories := storyadapter.NewPgStoryRepository(d.Pool)
	reports := reportadapter.NewPgReportRepository(d.Pool)
	chats := chatadapter.NewPgChatRepository(d.Pool)

	notifier := notifyuc.NewNotifyUserUseCase(notis, d.Registry)

	recipient := chatuc.NewFindRecipientUseCase(users)
	resolver := chatuc.NewResolveConversationUseCase(chats)
	sender := chatuc.NewSendDirectMessageUseCase(chats, recipient, resolver, d.Registry)

	authService := authsvc.NewService(users, otp.NewStore(d.Cache), d.Queue, d.Tokens)
	userService := usersvc.NewService(users, posts)
	postService := postsvc.NewService(posts, notifier, d.Broker, d.Log)
	interactService := interactsvc.NewService(interacts, posts, users, notis, notifier, sender)
	storyService := storysvc.NewService(stories)
	reportService := reportsvc.NewService(reports, users, posts, userService, notifier, d.Registry, d.Queue, d.Log)
	exploreService := exploresvc.NewService(users, posts, userService)

	public := r.Group("")
	authhttp.RegisterRoutes(public, authService)
	explorehttp.RegisterRoutes(public, exploreService)

	authed := r.Group("", middleware.Authenticate(d.Tokens, users))
	userhttp.RegisterRoutes(authed, userService)
	posthttp.RegisterRoutes(authed, postService)
	interacthttp.RegisterRoutes(authed, interactService)
	storyhttp.RegisterRoutes(authed, storyService)
	reporthttp.RegisterRoutes(authed, reportService)
	chathttp.RegisterRoutes(authed, d.Pool, users)

	chathttp.RegisterGateway(r, d.Pool, d.Registry, d.Tokens, users, d.Log)

	r.GET("/metrics", metrics.Handler())
}
