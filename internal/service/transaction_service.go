package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Muhidiny/osen-whmcs-mpesa/internal/callback"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/models"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/repository"
)

// TransactionService owns the invoice payment ledger.
type TransactionService struct {
	repo *repository.TransactionRepository
	log  *zap.Logger
}

func NewTransactionService(repo *repository.TransactionRepository, log *zap.Logger) *TransactionService {
	return &TransactionService{repo: repo, log: log}
}

func (s *TransactionService) CheckCallbackTransactionID(ctx context.Context, transID string) error {
	exists, err := s.repo.ExistsByTransID(ctx, transID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", callback.ErrDuplicateTransaction, transID)
	}
	return nil
}

func (s *TransactionService) AddInvoicePayment(ctx context.Context, p callback.InvoicePayment) error {
	t := &models.Transaction{
		InvoiceID:   p.InvoiceID,
		Gateway:     p.GatewayModule,
		TransID:     p.TransactionID,
		AmountIn:    p.Amount,
		Fees:        p.Fee,
		Description: "Invoice Payment",
		Date:        time.Now(),
	}
	inv, err := s.repo.AddInvoicePayment(ctx, t)
	if err != nil {
		return err
	}
	s.log.Info("invoice payment added",
		zap.Uint("invoice_id", inv.ID),
		zap.String("trans_id", t.TransID),
		zap.String("amount", t.AmountIn.String()),
		zap.String("invoice_status", inv.Status),
	)
	return nil
}

func (s *TransactionService) ListByInvoice(ctx context.Context, invoiceID uint) ([]models.Transaction, error) {
	return s.repo.ListByInvoice(ctx, invoiceID)
}
