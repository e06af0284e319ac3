// Package router wires the HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/feedbackform/feedback-backend/config"
	"github.com/feedbackform/feedback-backend/handlers"
	"github.com/feedbackform/feedback-backend/middleware"
)

// Dependencies holds everything required to set up the routes. ChatHandler
// may be nil, in which case the chat endpoints are not registered.
type Dependencies struct {
	Config          *config.Config
	FeedbackHandler *handlers.FeedbackHandler
	HealthHandler   *handlers.HealthHandler
	ChatHandler     *handlers.ChatHandler
	Logger          *zap.SugaredLogger
}

// SetupRouter configures and returns the gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	// With no trusted proxies configured, forwarded-for headers are ignored
	// and the recorded client IP is the socket peer.
	if err := r.SetTrustedProxies(deps.Config.Server.TrustedProxies); err != nil {
		deps.Logger.Warnw("Invalid trusted proxy configuration", "error", err)
	}

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", deps.HealthHandler.Health)

		// Public submission endpoint.
		api.POST("/feedback", deps.FeedbackHandler.Submit)

		// Administrative endpoints behind the shared-secret gate.
		adminAuth := middleware.AdminAuth(deps.Config.Server.AdminToken)
		api.GET("/feedback", adminAuth, deps.FeedbackHandler.List)
		api.PATCH("/feedback/:id", adminAuth, deps.FeedbackHandler.Patch)
		api.DELETE("/feedback/:id", adminAuth, deps.FeedbackHandler.Delete)

		if deps.ChatHandler != nil {
			secret := deps.Config.Auth.JWTSecret
			api.POST("/chat", middleware.OptionalIdentity(secret), deps.ChatHandler.Send)
			api.GET("/chat/history", middleware.RequireIdentity(secret), deps.ChatHandler.History)
		}
	}

	return r
}
