package delivery

import (
	"github.com/zaincode21/Truck-management-backend-sub000/internal/middleware"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	deliveries := r.Group("/deliveries")
	deliveries.Use(middleware.AuthMiddleware())
	{
		deliveries.GET("", middleware.Authorize(rbacService, "delivery", "read"), handler.GetAll)
		deliveries.GET("/:id", middleware.Authorize(rbacService, "delivery", "read"), handler.GetById)
		deliveries.POST("", middleware.Authorize(rbacService, "delivery", "create"), handler.Create)
		deliveries.PUT("/:id", middleware.Authorize(rbacService, "delivery", "update"), handler.Update)
		deliveries.DELETE("/:id", middleware.Authorize(rbacService, "delivery", "delete"), handler.Delete)
	}
}
