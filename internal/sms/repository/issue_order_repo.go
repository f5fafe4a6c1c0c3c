package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"gorm.io/gorm"
)

// IssueOrderRepository 领用单仓库
type IssueOrderRepository struct {
	db *gorm.DB
}

func NewIssueOrderRepository(db *gorm.DB) *IssueOrderRepository {
	return &IssueOrderRepository{db: db}
}

// FindAll 查询领用单列表
func (r *IssueOrderRepository) FindAll(ctx context.Context, page, pageSize int) ([]entity.IssueOrder, int64, error) {
	var orders []entity.IssueOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.IssueOrder{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	err := query.Preload("Rep").Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&orders).Error
	return orders, total, err
}

// FindByID 根据ID查找领用单（含行项产品信息）
func (r *IssueOrderRepository) FindByID(ctx context.Context, id uint) (*entity.IssueOrder, error) {
	var order entity.IssueOrder
	err := r.db.WithContext(ctx).
		Preload("Rep").
		Preload("Items.Product").
		Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}
