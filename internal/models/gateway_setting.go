package models

// GatewaySetting is one key/value row of a gateway module's configuration.
// A module counts as active while its "type" setting is present.
type GatewaySetting struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Gateway string `gorm:"size:64;not null;uniqueIndex:idx_gateway_setting" json:"gateway"`
	Setting string `gorm:"size:64;not null;uniqueIndex:idx_gateway_setting" json:"setting"`
	Value   string `gorm:"type:text" json:"value"`
}

func (GatewaySetting) TableName() string {
	return "payment_gateways"
}
