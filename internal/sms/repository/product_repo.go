package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"gorm.io/gorm"
)

// ProductRepository 产品仓库
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindAll 查询产品列表
func (r *ProductRepository) FindAll(ctx context.Context, keyword string) ([]entity.Product, error) {
	query := r.db.WithContext(ctx).Model(&entity.Product{})
	if keyword != "" {
		kw := "%" + keyword + "%"
		query = query.Where("product_code ILIKE ? OR description ILIKE ? OR brand ILIKE ?", kw, kw, kw)
	}
	var products []entity.Product
	err := query.Order("product_code ASC").Find(&products).Error
	return products, err
}

// FindByID 根据ID查找产品
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByCode 根据业务编码查找产品
func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*entity.Product, error) {
	var p entity.Product
	err := r.db.WithContext(ctx).Where("product_code = ?", code).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create 创建产品
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// CountAll 产品总数
func (r *ProductRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&count).Error
	return count, err
}

// CountLowStock 库存低于阈值的产品数
func (r *ProductRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("current_stock < min_stock_threshold").Count(&count).Error
	return count, err
}
