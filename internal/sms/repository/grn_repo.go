package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"gorm.io/gorm"
)

// GRNRepository 入库单仓库
type GRNRepository struct {
	db *gorm.DB
}

func NewGRNRepository(db *gorm.DB) *GRNRepository {
	return &GRNRepository{db: db}
}

// FindAll 查询入库单列表
func (r *GRNRepository) FindAll(ctx context.Context, page, pageSize int) ([]entity.GRN, int64, error) {
	var grns []entity.GRN
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.GRN{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&grns).Error
	return grns, total, err
}

// FindByID 根据ID查找入库单（含行项）
func (r *GRNRepository) FindByID(ctx context.Context, id uint) (*entity.GRN, error) {
	var grn entity.GRN
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&grn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &grn, nil
}
