package leave

import (
	"github.com/ap0309/leave-management-app/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("", handler.GetAll)
		leaves.GET("/:id", handler.GetByID)
		if rdb != nil {
			leaves.POST("", middleware.Idempotency(rdb), handler.Create)
		} else {
			leaves.POST("", handler.Create)
		}
		leaves.PUT("/:id", handler.Update)
		leaves.DELETE("/:id", handler.Delete)
	}
}
