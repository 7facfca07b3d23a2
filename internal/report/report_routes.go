package report

import (
	"github.com/zaincode21/Truck-management-backend-sub000/internal/middleware"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	reports := r.Group("/payroll")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/monthly-summary", middleware.Authorize(rbacService, "report", "read"), handler.GetMonthlySummary)
	}
}
