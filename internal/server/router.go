package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/dmarkova/slacklite/internal/handlers"
	"github.com/dmarkova/slacklite/internal/middleware"
	"github.com/dmarkova/slacklite/internal/ratelimit"
	"github.com/dmarkova/slacklite/pkg/auth"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Channel   *handlers.ChannelHandler
	Message   *handlers.MessageHandler
	Thread    *handlers.ThreadHandler
	Reaction  *handlers.ReactionHandler
	Status    *handlers.StatusHandler
	WebSocket *handlers.WebSocketHandler
}

func APIEndpoints(r *gin.Engine, h *Handlers, jwtMgr *auth.JWTManager, rdb *redis.Client, limiter *ratelimit.Limiter, logger *zap.Logger) {
	r.Use(requestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
	}

	authRequired := middleware.AuthMiddleware(jwtMgr, rdb)
	rateLimited := middleware.RateLimit(limiter)

	api := r.Group("/api/v1")
	api.Use(authRequired)
	{
		api.GET("/users/me", h.User.GetMe)
		api.GET("/users/:id", h.User.GetUser)

		api.POST("/channels", middleware.AdminOnly(), h.Channel.CreateChannel)
		api.GET("/channels", h.Channel.ListChannels)
		api.GET("/channels/:id", h.Channel.GetChannel)

		api.POST("/messages", rateLimited, h.Message.CreateMessage)
		api.GET("/messages", h.Message.ListMessages)
		api.GET("/messages/search", h.Message.Search)
		api.POST("/messages/thread/:id", rateLimited, h.Thread.CreateReply)
		api.GET("/messages/thread/:id", h.Thread.GetThread)

		api.POST("/reactions", rateLimited, h.Reaction.ToggleReaction)

		api.POST("/user/status", rateLimited, h.Status.SetStatus)
		api.GET("/user/status", h.Status.GetOwnStatus)
		api.GET("/user/status/:id", h.Status.GetUserStatus)
		api.DELETE("/user/status", rateLimited, h.Status.ClearStatus)

		api.GET("/presence", h.Status.Presence)
	}

	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), h.WebSocket.HandleWebSocket)
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
