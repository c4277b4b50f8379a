package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	docs "github.com/tazhibayda/community-service/docs"
	"github.com/tazhibayda/community-service/internal/config"
	httpapi "github.com/tazhibayda/community-service/internal/http"
	"github.com/tazhibayda/community-service/internal/log"
	"github.com/tazhibayda/community-service/internal/metrics"
	"github.com/tazhibayda/community-service/internal/repo"
	"github.com/tazhibayda/community-service/internal/service"
	"go.uber.org/zap"
)

// @title Community API
// @version 0.1.0
// @description API for community groups, discussions, comments and likes.
// @schemes http https
// @BasePath /
func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.Prod())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	var rds *repo.Redis
	if cfg.RedisAddr != "" {
		rds = repo.NewRedis(cfg.RedisAddr)
		if err := rds.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, falling back to in-memory rate limiting", zap.Error(err))
			rds = nil
		} else {
			defer rds.Close()
		}
	}

	docs.SwaggerInfo.BasePath = "/"

	groups := service.NewGroupService(store.Groups, store.Discussions)
	discussions := service.NewDiscussionService(store.Discussions, store.Groups)
	interactions := service.NewInteractionService(store.Discussions)

	h := httpapi.NewHandler(groups, discussions, interactions, store, rds, cfg.RateLimitPerMin)
	r := httpapi.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	logger.Info("community-service listening", zap.String("port", cfg.Port))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}
}
