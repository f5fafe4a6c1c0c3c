package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesRepository 销售发票仓库
type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

// FindAll 查询发票列表
func (r *SalesRepository) FindAll(ctx context.Context, page, pageSize int) ([]entity.SalesInvoice, int64, error) {
	var invoices []entity.SalesInvoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SalesInvoice{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	err := query.Preload("Customer").Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&invoices).Error
	return invoices, total, err
}

// FindByID 根据ID查找发票（含客户与行项产品信息）
func (r *SalesRepository) FindByID(ctx context.Context, id uint) (*entity.SalesInvoice, error) {
	var inv entity.SalesInvoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Product").
		Where("id = ?", id).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindByNumber 根据发票号查找发票（含客户与行项产品信息）
func (r *SalesRepository) FindByNumber(ctx context.Context, number string) (*entity.SalesInvoice, error) {
	var inv entity.SalesInvoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Product").
		Where("invoice_number = ?", number).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// SumTotalAmount 所有发票金额合计
func (r *SalesRepository) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&entity.SalesInvoice{}).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&total).Error
	return total, err
}
