package truck

import (
	"github.com/zaincode21/Truck-management-backend-sub000/internal/middleware"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	trucks := r.Group("/trucks")
	trucks.Use(middleware.AuthMiddleware())
	{
		trucks.GET("", middleware.Authorize(rbacService, "truck", "read"), handler.GetAll)
		trucks.GET("/:id", middleware.Authorize(rbacService, "truck", "read"), handler.GetById)
		trucks.POST("", middleware.Authorize(rbacService, "truck", "create"), handler.Create)
		trucks.PUT("/:id", middleware.Authorize(rbacService, "truck", "update"), handler.Update)
		trucks.DELETE("/:id", middleware.Authorize(rbacService, "truck", "delete"), handler.Delete)
	}
}
