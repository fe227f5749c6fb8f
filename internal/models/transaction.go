package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a ledger entry applied to an invoice by a payment gateway.
// TransID is the gateway's own reference (CheckoutRequestID for M-Pesa STK).
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	InvoiceID   uint            `gorm:"not null;index" json:"invoice_id"`
	Gateway     string          `gorm:"size:64;not null" json:"gateway"`
	TransID     string          `gorm:"size:255;index" json:"trans_id"`
	AmountIn    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"amount_in"`
	Fees        decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"fees"`
	Description string          `gorm:"size:255" json:"description"`
	Date        time.Time       `gorm:"not null" json:"date"`
	CreatedAt   time.Time       `json:"created_at"`

	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
