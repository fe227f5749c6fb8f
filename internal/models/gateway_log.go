package models

import "time"

// GatewayLog is the debug trail written for every processed callback.
type GatewayLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Gateway   string    `gorm:"size:64;not null;index" json:"gateway"`
	Data      string    `gorm:"type:text" json:"data"` // JSON
	Result    string    `gorm:"size:64;not null" json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

func (GatewayLog) TableName() string {
	return "gateway_log"
}
