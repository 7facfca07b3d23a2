package fine

import (
	"github.com/zaincode21/Truck-management-backend-sub000/internal/middleware"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, rdb *redis.Client) {
	fines := r.Group("/fines")
	fines.Use(middleware.AuthMiddleware())
	{
		fines.GET("", middleware.Authorize(rbacService, "fine", "read"), handler.GetAll)
		fines.GET("/:id", middleware.Authorize(rbacService, "fine", "read"), handler.GetById)
		fines.POST("",
			middleware.Authorize(rbacService, "fine", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		fines.PUT("/:id", middleware.Authorize(rbacService, "fine", "update"), handler.Update)
		fines.DELETE("/:id", middleware.Authorize(rbacService, "fine", "delete"), handler.Delete)

		fines.POST("/:id/payments", middleware.Authorize(rbacService, "payment", "create"), handler.RecordPayment)
		fines.GET("/:id/payments", middleware.Authorize(rbacService, "payment", "read"), handler.GetPaymentHistory)
	}
}
