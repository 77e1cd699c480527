package http

import (
	"github.com/dateit-app/dateit-backend/internal/delivery/http/handler"
	"github.com/dateit-app/dateit-backend/internal/delivery/http/middleware"
	"github.com/dateit-app/dateit-backend/internal/delivery/ws"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler    *handler.AuthHandler
	actionHandler  *handler.ActionHandler
	matchHandler   *handler.MatchHandler
	messageHandler *handler.MessageHandler
	uploadHandler  *handler.UploadHandler
	wsHandler      *ws.Handler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	actionHandler *handler.ActionHandler,
	matchHandler *handler.MatchHandler,
	messageHandler *handler.MessageHandler,
	uploadHandler *handler.UploadHandler,
	wsHandler *ws.Handler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:    authHandler,
		actionHandler:  actionHandler,
		matchHandler:   matchHandler,
		messageHandler: messageHandler,
		uploadHandler:  uploadHandler,
		wsHandler:      wsHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// WebSocket endpoint (token passed as query parameter)
	router.GET("/ws", r.wsHandler.Serve)

	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/pre-register", r.authHandler.PreRegister)
			auth.GET("/verify/:token", r.authHandler.Verify)
			auth.POST("/login", r.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			account := protected.Group("/auth")
			{
				account.GET("/profile", r.authHandler.GetProfile)
				account.PUT("/profile", r.authHandler.UpdateProfile)
				account.POST("/like", r.actionHandler.Like)
				account.POST("/pass", r.actionHandler.Pass)
				account.GET("/suggestions", r.actionHandler.Suggestions)
			}

			users := protected.Group("/users")
			{
				users.GET("", r.authHandler.ListUsers)
				users.GET("/:userId", r.authHandler.GetUser)
				users.DELETE("/:userId", r.authHandler.DeleteUser)
			}

			matches := protected.Group("/matches")
			{
				matches.POST("/create", r.matchHandler.Create)
				matches.GET("/my-matches", r.matchHandler.MyMatches)
				matches.GET("/pending-requests", r.matchHandler.PendingRequests)
				matches.GET("/:matchId", r.matchHandler.Get)
				matches.POST("/accept/:matchId", r.matchHandler.Accept)
				matches.DELETE("/reject/:matchId", r.matchHandler.Reject)
				matches.PATCH("/:matchId/end", r.matchHandler.End)
			}

			messages := protected.Group("/messages")
			{
				messages.POST("", r.messageHandler.Send)
				messages.GET("/:matchId", r.messageHandler.History)
				messages.PATCH("/:matchId/read", r.messageHandler.MarkRead)
				messages.GET("/:matchId/unread-count", r.messageHandler.UnreadCount)
			}

			protected.POST("/upload", r.uploadHandler.Upload)
			protected.POST("/upload-multiple", r.uploadHandler.UploadMultiple)
			protected.DELETE("/upload/*objectKey", r.uploadHandler.Delete)
		}
	}

	return router
}
