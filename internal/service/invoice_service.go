package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Muhidiny/osen-whmcs-mpesa/internal/callback"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/repository"
)

type InvoiceService struct {
	repo *repository.InvoiceRepository
	log  *zap.Logger
}

func NewInvoiceService(repo *repository.InvoiceRepository, log *zap.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, log: log}
}

// CheckCallbackInvoiceID normalizes raw to an invoice id. Any existing
// invoice is accepted regardless of status.
func (s *InvoiceService) CheckCallbackInvoiceID(ctx context.Context, raw, gatewayName string) (uint, error) {
	trimmed := strings.TrimSpace(raw)
	id, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil || id == 0 {
		s.log.Info("callback invoice id not numeric", zap.String("gateway", gatewayName), zap.String("invoice_ref", raw))
		return 0, fmt.Errorf("%w: %q", callback.ErrInvalidInvoiceID, raw)
	}
	exists, err := s.repo.Exists(ctx, uint(id))
	if err != nil {
		return 0, err
	}
	if !exists {
		s.log.Info("callback invoice not found", zap.String("gateway", gatewayName), zap.Uint64("invoice_id", id))
		return 0, fmt.Errorf("%w: %d not found", callback.ErrInvalidInvoiceID, id)
	}
	return uint(id), nil
}
