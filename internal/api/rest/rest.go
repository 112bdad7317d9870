// Package rest exposes the leaderboard, refresh and webhook endpoints.
package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/higher-steaks/hs-leaderboard/internal/api/middleware"
)

// SetupRoutes registers all REST routes on the router
func SetupRoutes(router *gin.Engine, handler *Handler, authConfig middleware.AuthConfig) {
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/leaderboard", handler.GetLeaderboard)
		v1.POST("/leaderboard/refresh", middleware.Auth(authConfig), handler.RefreshLeaderboard)

		v1.POST("/webhooks/lockups", handler.LockupWebhook)
		v1.POST("/webhooks/miniapp", handler.MiniappWebhook)

		v1.GET("/events", handler.GetLatestEvent)
		v1.GET("/events/ws", handler.StreamEvents)
	}
}
