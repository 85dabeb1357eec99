package auth

import (
	"github.com/ap0309/leave-management-app/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	// Tight per-IP limit on login attempts.
	r.POST("/login", middleware.RateLimitByIP(1, 5), handler.Login)
}
