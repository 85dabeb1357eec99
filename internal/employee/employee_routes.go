package employee

import (
	"github.com/ap0309/leave-management-app/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.POST("", middleware.RateLimitByIP(0.5, 3), handler.Create)
		employees.GET("/:email", handler.GetByEmail)
		employees.GET("/:email/leave-balance", handler.GetBalances)
		employees.PUT("/:email/leave-balance", handler.SetBalances)
		employees.GET("/:email/leave-history", handler.GetHistory)
	}
}
