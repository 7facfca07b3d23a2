package payroll

import (
	"github.com/zaincode21/Truck-management-backend-sub000/internal/middleware"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, rdb *redis.Client) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	{
		payroll.GET("/current-period", middleware.Authorize(rbacService, "payroll", "read"), handler.GetCurrentPeriod)
		payroll.GET("/periods", middleware.Authorize(rbacService, "payroll", "read"), handler.GetPeriods)
		payroll.GET("/period/:id/records", middleware.Authorize(rbacService, "payroll", "read"), handler.GetPeriodRecords)
		payroll.POST("/process-month-end",
			middleware.Authorize(rbacService, "payroll", "process"),
			middleware.Idempotency(rdb),
			handler.ProcessMonthEnd,
		)
	}
}
