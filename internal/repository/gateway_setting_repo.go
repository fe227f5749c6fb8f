package repository

import (
	"context"

	"github.com/Muhidiny/osen-whmcs-mpesa/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GatewaySettingRepository struct {
	db *gorm.DB
}

func NewGatewaySettingRepository(db *gorm.DB) *GatewaySettingRepository {
	return &GatewaySettingRepository{db: db}
}

// Variables returns all settings of gateway as a map. An unknown gateway
// yields an empty map.
func (r *GatewaySettingRepository) Variables(ctx context.Context, gateway string) (map[string]string, error) {
	var rows []models.GatewaySetting
	if err := r.db.WithContext(ctx).Where("gateway = ?", gateway).Find(&rows).Error; err != nil {
		return nil, err
	}
	vars := make(map[string]string, len(rows))
	for _, row := range rows {
		vars[row.Setting] = row.Value
	}
	return vars, nil
}

func (r *GatewaySettingRepository) Set(ctx context.Context, gateway, setting, value string) error {
	row := models.GatewaySetting{Gateway: gateway, Setting: setting, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "gateway"}, {Name: "setting"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
}

func (r *GatewaySettingRepository) Delete(ctx context.Context, gateway, setting string) error {
	return r.db.WithContext(ctx).Where("gateway = ? AND setting = ?", gateway, setting).Delete(&models.GatewaySetting{}).Error
}

// SeedDefaults inserts the given settings for gateway where they don't exist yet.
func (r *GatewaySettingRepository) SeedDefaults(ctx context.Context, gateway string, defaults map[string]string) error {
	for k, v := range defaults {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.GatewaySetting{}).Where("gateway = ? AND setting = ?", gateway, k).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := r.db.WithContext(ctx).Create(&models.GatewaySetting{Gateway: gateway, Setting: k, Value: v}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
