package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	v1 "github.com/trang-ptt/INSTARE-BE/cmd/api/router/v1"
	cacheadapter "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/cache/adapter"
	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/database"
	mailadapter "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/mail/adapter"
	pubsubadapter "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/pubsub/adapter"
	queueadapter "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/queue/adapter"
	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/realtime"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/token"
	mailtask "github.com/trang-ptt/INSTARE-BE/internal/pkg/mail/application/task"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/broadcast"
	notifyuc "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/usecase"
	notifyadapter "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/persistence/repository/adapter"
)

func main() {
	// Containerized deploys configure through real env vars; a missing .env
	// file is not an error.
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := database.NewPoolFromEnv(connectCtx)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	defer pool.Close()

	cache, err := cacheadapter.NewRedisAdapter()
	if err != nil {
		log.Fatal("redis cache connect failed", zap.Error(err))
	}
	defer func() { _ = cache.Close() }()

	broker, err := pubsubadapter.NewRedisBrokerFromEnv()
	if err != nil {
		log.Fatal("redis broker connect failed", zap.Error(err))
	}
	defer func() { _ = broker.Close() }()

	queueClient, err := queueadapter.NewAsynqClientFromEnv()
	if err != nil {
		log.Fatal("queue client init failed", zap.Error(err))
	}
	defer func() { _ = queueClient.Close() }()

	tokens, err := token.NewServiceFromEnv()
	if err != nil {
		log.Fatal("token service init failed", zap.Error(err))
	}

	mailer, err := mailadapter.NewSMTPMailerFromEnv()
	if err != nil {
		log.Fatal("mailer init failed", zap.Error(err))
	}

	workers, err := queueadapter.NewAsynqServer(log)
	if err != nil {
		log.Fatal("queue server init failed", zap.Error(err))
	}
	mailtask.RegisterSendMailTask(workers, mailer)
	go func() {
		if err := workers.Run(ctx); err != nil {
			log.Error("queue server stopped", zap.Error(err))
		}
	}()

	registry := realtime.NewRegistry()
	defer registry.Close()

	// Follower fan-out subscriber for freshly created posts.
	notis := notifyadapter.NewPgNotificationRepository(pool)
	broadcaster := broadcast.NewBroadcaster(broker, notis,
		notifyuc.NewNotifyUserUseCase(notis, registry), log)
	go broadcaster.Run(ctx)

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, v1.Deps{
		Pool:     pool,
		Registry: registry,
		Tokens:   tokens,
		Cache:    cache,
		Queue:    queueClient,
		Broker:   broker,
		Log:      log,
	})

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("http server failed", zap.Error(err))
	}
}
