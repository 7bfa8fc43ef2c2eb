package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/dmarkova/slacklite/internal/config"
	"github.com/dmarkova/slacklite/internal/database"
	"github.com/dmarkova/slacklite/internal/handlers"
	"github.com/dmarkova/slacklite/internal/ratelimit"
	"github.com/dmarkova/slacklite/internal/realtime"
	"github.com/dmarkova/slacklite/pkg/auth"
)

type Server struct {
	Router *gin.Engine
	DB     *database.Database
	Redis  *redis.Client
	Hub    *realtime.Hub

	cfg    *config.Config
	logger *zap.Logger
	cancel context.CancelFunc
}

func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	db := database.NewDatabase(nil)
	if err := db.Connect(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)

	hub := realtime.NewHub(logger)
	bridge := realtime.NewBridge(rdb, hub, logger)
	dispatcher := realtime.NewDispatcher(hub, bridge, logger)

	limiter := ratelimit.New(cfg.RateLimit, time.Duration(cfg.RateWindow)*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run()
	go bridge.Run(ctx)
	go limiter.Run(ctx)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	deps := &Handlers{
		Auth:      handlers.NewAuthHandler(db, jwtMgr, rdb),
		User:      handlers.NewUserHandler(db),
		Channel:   handlers.NewChannelHandler(db, logger),
		Message:   handlers.NewMessageHandler(db, dispatcher, logger),
		Thread:    handlers.NewThreadHandler(db, dispatcher, logger),
		Reaction:  handlers.NewReactionHandler(db, dispatcher, logger),
		Status:    handlers.NewStatusHandler(db, hub, dispatcher, logger),
		WebSocket: handlers.NewWebSocketHandler(hub, logger),
	}
	APIEndpoints(router, deps, jwtMgr, rdb, limiter, logger)

	return &Server{
		Router: router,
		DB:     db,
		Redis:  rdb,
		Hub:    hub,
		cfg:    cfg,
		logger: logger,
		cancel: cancel,
	}, nil
}

func (s *Server) Run() error {
	s.logger.Info("starting slacklite",
		zap.String("port", s.cfg.Port),
		zap.String("env", s.cfg.Env),
	)
	return s.Router.Run(":" + s.cfg.Port)
}

func (s *Server) Stop() {
	s.cancel()
	s.Hub.Stop()
	if err := s.Redis.Close(); err != nil {
		s.logger.Warn("redis close failed", zap.Error(err))
	}
}
