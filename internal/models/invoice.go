package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Invoice struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ClientID  uint            `gorm:"not null;index" json:"client_id"`
	Total     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"`
	Currency  string          `gorm:"size:3;default:'KES'" json:"currency"`
	Status    string          `gorm:"size:20;not null;index" json:"status"` // Unpaid, Paid, Cancelled, Refunded
	DueDate   *time.Time      `json:"due_date"`
	DatePaid  *time.Time      `json:"date_paid"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Invoice) TableName() string {
	return "invoices"
}
