package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"msghub/database"
	"msghub/internal/config"
	"msghub/internal/handler"
	"msghub/internal/mail"
	"msghub/internal/mentions"
	"msghub/internal/middleware"
	"msghub/internal/notifications"
	"msghub/internal/realtime"
	"msghub/internal/repository"
	"msghub/internal/service"
	"msghub/internal/webpush"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Setup structured logging
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Connect to the database, migrating the schema on the way up
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Redis backs broadcast fan-out across instances
	redisAddr := cfg.RedisURL
	redisAddr = strings.TrimPrefix(redisAddr, "redis://")
	redisAddr = strings.TrimPrefix(redisAddr, "rediss://")
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Warn("Redis unreachable, broadcast delivery degraded", "error", err)
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	// Notification pipeline
	publisher := realtime.NewRedisPublisher(redisClient, func() bool { return cfg.MessagingEnabled })
	mailSender := mail.NewSender(mail.Config{
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUsername: cfg.SMTPUser,
		SMTPPassword: cfg.SMTPPass,
		FromEmail:    cfg.MailFrom,
		AppURL:       cfg.AppURL,
	})
	pushSender := webpush.NewSender(10*time.Second, int(cfg.PushTTL.Seconds()))

	dispatcher := notifications.NewDispatcher(
		notifications.NewDatabaseChannel(notificationRepo),
		notifications.NewBroadcastChannel(publisher),
		notifications.NewMailChannel(mailSender),
		notifications.NewPushChannel(subscriptionRepo, pushSender),
		logger,
	)
	queue := notifications.NewQueue(cfg.DispatchWorkers, 256, cfg.DispatchRate)
	queue.Start()

	extractor := mentions.NewExtractor(userRepo)

	// Services
	messageService := service.NewMessageService(messageRepo, extractor, dispatcher, queue)
	commentService := service.NewCommentService(commentRepo, messageRepo, extractor, dispatcher, queue)
	reactionService := service.NewReactionService(reactionRepo, messageRepo, publisher)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	// Realtime hub mirrors the redis channel out to websocket clients
	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := realtime.NewHub()
	go hub.Run(hubCtx)
	go hub.ListenRedis(hubCtx, redisClient)

	// Setup Gin
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders(middleware.IdentityHeader)
	r.Use(cors.New(corsConfig))

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.Identity())

	messages := api.Group("/messages")
	handler.NewMessageHandler(messageService).RegisterRoutes(messages)
	handler.NewCommentHandler(commentService).RegisterRoutes(messages)
	handler.NewReactionHandler(reactionService).RegisterRoutes(messages)

	subscriptions := api.Group("/push-subscriptions")
	handler.NewSubscriptionHandler(subscriptionService).RegisterRoutes(subscriptions)

	notificationsGroup := api.Group("/notifications")
	handler.NewNotificationHandler(notificationService).RegisterRoutes(notificationsGroup)

	realtime.NewHandler(hub, func() bool { return cfg.MessagingEnabled }).RegisterRoutes(api)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		logger.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}

	// Drain queued notification work before exiting
	queue.Stop()
	stopHub()
	redisClient.Close()
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
