package repository

import (
	"context"
	"time"

	"github.com/Muhidiny/osen-whmcs-mpesa/internal/domain"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ExistsByTransID(ctx context.Context, transID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("trans_id = ?", transID).Count(&n).Error
	return n > 0, err
}

func (r *TransactionRepository) ListByInvoice(ctx context.Context, invoiceID uint) ([]models.Transaction, error) {
	var list []models.Transaction
	err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).Order("date ASC, id ASC").Find(&list).Error
	return list, err
}

// AddInvoicePayment inserts t and, when the invoice's payments now cover its
// total, marks an unpaid invoice Paid. Both happen in one database transaction.
// The returned invoice reflects the post-payment state.
func (r *TransactionRepository) AddInvoicePayment(ctx context.Context, t *models.Transaction) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&inv, t.InvoiceID).Error; err != nil {
			return err
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		paid, err := sumPayments(tx, t.InvoiceID)
		if err != nil {
			return err
		}
		if inv.Status != domain.InvoiceStatusUnpaid || paid.LessThan(inv.Total) {
			return nil
		}
		now := time.Now()
		inv.Status = domain.InvoiceStatusPaid
		inv.DatePaid = &now
		return tx.Model(&inv).Updates(map[string]interface{}{"status": inv.Status, "date_paid": inv.DatePaid}).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func sumPayments(tx *gorm.DB, invoiceID uint) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := tx.Model(&models.Transaction{}).Where("invoice_id = ?", invoiceID).Pluck("amount_in", &amounts).Error; err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}
