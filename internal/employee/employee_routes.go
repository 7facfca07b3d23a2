package employee

import (
	"github.com/zaincode21/Truck-management-backend-sub000/internal/middleware"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.Authorize(rbacService, "employee", "read"), handler.GetAll)
		employees.GET("/:id", middleware.Authorize(rbacService, "employee", "read"), handler.GetById)
		employees.POST("", middleware.Authorize(rbacService, "employee", "create"), handler.Create)
		employees.PUT("/:id", middleware.Authorize(rbacService, "employee", "update"), handler.Update)
		employees.DELETE("/:id", middleware.Authorize(rbacService, "employee", "delete"), handler.Delete)
	}
}
