package database

import (
	"context"

	"github.com/Muhidiny/osen-whmcs-mpesa/config"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/domain"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/models"
	"github.com/Muhidiny/osen-whmcs-mpesa/internal/repository"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Invoice{},
		&models.Transaction{},
		&models.GatewayLog{},
		&models.GatewaySetting{},
	)
}

// SeedGateway registers the configured gateway module as active unless it
// already has settings of its own.
func SeedGateway(ctx context.Context, db *gorm.DB, cfg *config.GatewayConfig) error {
	repo := repository.NewGatewaySettingRepository(db)
	return repo.SeedDefaults(ctx, cfg.Module, map[string]string{
		domain.GatewaySettingType:    cfg.Type,
		domain.GatewaySettingName:    cfg.DisplayName,
		domain.GatewaySettingVisible: "on",
	})
}
