package app

import (
	"database/sql"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/auth"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/delivery"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/employee"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/expense"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/fine"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/messaging/kafka"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/middleware"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/payroll"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/period"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/rbac"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/rbac/infra"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/report"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/truck"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	deliveryRepo := delivery.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	expenseRepo := expense.NewRepository(gormDB)
	fineRepo := fine.NewRepository(gormDB, db)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB, db)
	periodRepo := period.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	truckRepo := truck.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	periodResolver := period.NewResolver(periodRepo)
	authService := auth.NewService(authRepo)
	deliveryService := delivery.NewService(deliveryRepo)
	employeeService := employee.NewService(employeeRepo)
	expenseService := expense.NewService(expenseRepo)
	fineService := fine.NewService(db, fineRepo, periodResolver, outboxRepo)
	payrollService := payroll.NewService(db, payrollRepo, periodResolver, outboxRepo)
	reportService := report.NewService(reportRepo, rdb)
	truckService := truck.NewService(truckRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	deliveryHandler := delivery.NewHandler(deliveryService)
	employeeHandler := employee.NewHandler(employeeService)
	expenseHandler := expense.NewHandler(expenseService)
	fineHandler := fine.NewHandlerWithRedis(fineService, rdb)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	reportHandler := report.NewHandler(reportService)
	truckHandler := truck.NewHandler(truckService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, middleware.AuthMiddleware())
		delivery.RegisterRoutes(api, deliveryHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		expense.RegisterRoutes(api, expenseHandler, rbacService)
		fine.RegisterRoutes(api, fineHandler, rbacService, rdb)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		report.RegisterRoutes(api, reportHandler, rbacService)
		truck.RegisterRoutes(api, truckHandler, rbacService)
	}

	return nil
}
