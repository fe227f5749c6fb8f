package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Muhidiny/osen-whmcs-mpesa/internal/middleware"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/service"
)

type AdminHandler struct {
	gatewaySvc     *service.GatewayService
	gatewayLogSvc  *service.GatewayLogService
	transactionSvc *service.TransactionService
	log            *zap.Logger
}

func NewAdminHandler(
	gatewaySvc *service.GatewayService,
	gatewayLogSvc *service.GatewayLogService,
	transactionSvc *service.TransactionService,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		gatewaySvc:     gatewaySvc,
		gatewayLogSvc:  gatewayLogSvc,
		transactionSvc: transactionSvc,
		log:            log,
	}
}

// ListGatewayLog handles GET /admin/gateway-log?gateway=&page=&limit=
func (h *AdminHandler) ListGatewayLog(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.gatewayLogSvc.List(c.Request.Context(), c.Query("gateway"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list gateway log"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// ListInvoiceTransactions handles GET /admin/invoices/:id/transactions
func (h *AdminHandler) ListInvoiceTransactions(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
		return
	}
	list, err := h.transactionSvc.ListByInvoice(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "invoice_id": id})
}

// SetGatewayActivation handles PUT /admin/gateways/:module/activation
func (h *AdminHandler) SetGatewayActivation(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	module := c.Param("module")
	if err := h.gatewaySvc.SetActive(c.Request.Context(), module, *req.Active); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update gateway"})
		return
	}
	params, err := h.gatewaySvc.Variables(c.Request.Context(), module)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read gateway"})
		return
	}
	middleware.Logger(c, h.log).Info("gateway activation changed",
		zap.String("module", module),
		zap.Bool("active", params.Active),
		zap.String("by", middleware.GetSubject(c)),
	)
	c.JSON(http.StatusOK, gin.H{"module": module, "name": params.Name, "active": params.Active})
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
