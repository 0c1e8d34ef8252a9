package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/team-maroon/recipify/config"
	"github.com/team-maroon/recipify/internal/api"
	"github.com/team-maroon/recipify/internal/api/handler"
	"github.com/team-maroon/recipify/internal/cache"
	"github.com/team-maroon/recipify/internal/repository"
	"github.com/team-maroon/recipify/internal/service"
	"github.com/team-maroon/recipify/pkg/database"
	"github.com/team-maroon/recipify/pkg/logger"
	"github.com/team-maroon/recipify/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, "recipify", cfg.Trace.Endpoint)
	if err != nil {
		logger.Warn("tracing init failed", zap.Error(err))
	} else {
		defer shutdownTracing(ctx)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("database init failed", zap.Error(err))
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("migration failed", zap.Error(err))
		os.Exit(1)
	}

	var followerCache *cache.FollowerCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, follower cache disabled", zap.Error(err))
		} else {
			followerCache = cache.New(rdb, cfg.Redis.TTL)
		}
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	requestRepo := repository.NewFollowRequestRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	shoppingRepo := repository.NewShoppingListRepository(db)

	relations := service.NewRelationshipService(db, followRepo, requestRepo, userRepo, followerCache)
	notifications := service.NewNotificationService(notifRepo)
	feed := service.NewFeedService(db, recipeRepo, ratingRepo, followRepo)
	engagement := service.NewEngagementService(db, ratingRepo, commentRepo)
	recipes := service.NewRecipeService(recipeRepo, commentRepo, feed, engagement)
	explore := service.NewExploreService(db, recipeRepo, feed)
	users := service.NewUserService(userRepo, relations)
	shopping := service.NewShoppingListService(shoppingRepo, recipeRepo)
	inbox := service.NewInboxService(commentRepo, recipeRepo)

	h := handler.New(
		users, relations, notifications, feed, recipes,
		engagement, explore, shopping, inbox,
		cfg.Auth.JWTSecret, cfg.Auth.TokenTTL,
	)
	router := api.NewRouter(h, cfg)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
