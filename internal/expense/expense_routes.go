package expense

import (
	"github.com/zaincode21/Truck-management-backend-sub000/internal/middleware"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	expenses := r.Group("/expenses")
	expenses.Use(middleware.AuthMiddleware())
	{
		expenses.GET("", middleware.Authorize(rbacService, "expense", "read"), handler.GetAll)
		expenses.GET("/:id", middleware.Authorize(rbacService, "expense", "read"), handler.GetById)
		expenses.POST("", middleware.Authorize(rbacService, "expense", "create"), handler.Create)
		expenses.PUT("/:id", middleware.Authorize(rbacService, "expense", "update"), handler.Update)
		expenses.DELETE("/:id", middleware.Authorize(rbacService, "expense", "delete"), handler.Delete)
	}
}
