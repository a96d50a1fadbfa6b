package app

import (
	"database/sql"

	"schoolpay/internal/billing"
	"schoolpay/internal/dashboard"
	"schoolpay/internal/invoice"
	"schoolpay/internal/messaging/kafka"
	"schoolpay/internal/middleware"
	"schoolpay/internal/paymentconfig"
	"schoolpay/internal/shared/counter"
	"schoolpay/internal/student"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	configRepo := paymentconfig.NewRepository(gormDB)
	studentRepo := student.NewRepository(gormDB)
	billingRepo := billing.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	configService := paymentconfig.NewService(configRepo)
	studentService := student.NewService(db, studentRepo)
	billingService := billing.NewServiceWithOutbox(db, billingRepo, studentRepo, configService, counterRepo, outboxRepo)
	invoiceService := invoice.NewService(billingRepo, studentRepo)
	dashboardService := dashboard.NewService(billingRepo, studentRepo, rdb)

	// --- Handlers ---
	configHandler := paymentconfig.NewHandler(configService)
	studentHandler := student.NewHandler(studentService)
	billingHandler := billing.NewHandler(billingService)
	invoiceHandler := invoice.NewHandler(invoiceService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// --- Middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.SchoolContext())
	api.Use(middleware.ContextLogger(zap.L()))
	api.Use(middleware.Idempotency(rdb))
	{
		paymentconfig.RegisterRoutes(api, configHandler)
		student.RegisterRoutes(api, studentHandler)
		billing.RegisterRoutes(api, billingHandler)
		invoice.RegisterRoutes(api, invoiceHandler)
		dashboard.RegisterRoutes(api, dashboardHandler)
	}

	return nil
}
