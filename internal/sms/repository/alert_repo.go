package repository

import (
	"context"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"gorm.io/gorm"
)

// AlertRepository 低库存预警仓库
type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// FindAll 查询预警列表，status为空时返回全部
func (r *AlertRepository) FindAll(ctx context.Context, status string) ([]entity.Alert, error) {
	query := r.db.WithContext(ctx).Model(&entity.Alert{}).Preload("Product")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var alerts []entity.Alert
	err := query.Order("created_at DESC").Find(&alerts).Error
	return alerts, err
}

// FindRecentActive 最近N条活跃预警
func (r *AlertRepository) FindRecentActive(ctx context.Context, limit int) ([]entity.Alert, error) {
	var alerts []entity.Alert
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.AlertStatusActive).
		Order("created_at DESC").Limit(limit).Find(&alerts).Error
	return alerts, err
}

// UpdateStatus 更新预警状态
func (r *AlertRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&entity.Alert{}).
		Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
