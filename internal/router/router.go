package router

import (
	"net/http"

	"github.com/Muhidiny/osen-whmcs-mpesa/config"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/callback"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/domain"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/handler"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/middleware"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/repository"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/service"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Setup builds the engine. The returned limiter must be stopped on shutdown.
func Setup(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*gin.Engine, *middleware.InMemoryRateLimiter) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	limiter := middleware.NewInMemoryRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(log))

	// Repositories
	invoiceRepo := repository.NewInvoiceRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	gatewayLogRepo := repository.NewGatewayLogRepository(db)
	gatewaySettingRepo := repository.NewGatewaySettingRepository(db)

	logHub := ws.NewHub()

	// Services
	gatewaySvc := service.NewGatewayService(gatewaySettingRepo, cfg.Gateway)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, log)
	transactionSvc := service.NewTransactionService(transactionRepo, log)
	gatewayLogSvc := service.NewGatewayLogService(gatewayLogRepo, logHub)
	processor := callback.NewProcessor(cfg.Gateway.Module, gatewaySvc, invoiceSvc, transactionSvc, gatewayLogSvc, transactionSvc, log)

	// Handlers
	callbackHandler := handler.NewMpesaCallbackHandler(processor, log)
	adminHandler := handler.NewAdminHandler(gatewaySvc, gatewayLogSvc, transactionSvc, log)

	authMw := middleware.AuthRequired(&cfg.JWT)
	// The provider delivers callbacks from a few IPs; only operator routes are limited.
	rateMw := middleware.RateLimit(limiter, log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/gateways/mpesa/callback", callbackHandler.Handle)

		admin := api.Group("/admin")
		admin.Use(rateMw, authMw, middleware.AdminRequired())
		{
			admin.GET("/gateway-log", adminHandler.ListGatewayLog)
			admin.GET("/invoices/:id/transactions", adminHandler.ListInvoiceTransactions)
			admin.PUT("/gateways/:module/activation", adminHandler.SetGatewayActivation)
		}
	}

	r.GET("/ws/admin/gateway-log", rateMw, ws.UpgradeGatewayLogWS(&cfg.JWT, logHub, log))

	log.Info("routes registered",
		zap.String("gateway_module", cfg.Gateway.Module),
		zap.String("admin_role", domain.RoleAdmin),
	)
	return r, limiter
}
