package repository

import (
	"context"

	"github.com/Muhidiny/osen-whmcs-mpesa/internal/models"

	"gorm.io/gorm"
)

type GatewayLogRepository struct {
	db *gorm.DB
}

func NewGatewayLogRepository(db *gorm.DB) *GatewayLogRepository {
	return &GatewayLogRepository{db: db}
}

func (r *GatewayLogRepository) Create(ctx context.Context, l *models.GatewayLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// List returns log entries newest first, optionally filtered by gateway name.
func (r *GatewayLogRepository) List(ctx context.Context, gateway string, page, limit int) ([]models.GatewayLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.GatewayLog{})
	if gateway != "" {
		q = q.Where("gateway = ?", gateway)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.GatewayLog
	err := q.Order("created_at DESC, id DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
