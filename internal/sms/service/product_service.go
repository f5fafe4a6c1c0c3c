package service

import (
	"context"
	"errors"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/bitfantasy/nimo-sms/internal/sms/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService 产品服务
type ProductService struct {
	repo *repository.ProductRepository
}

func NewProductService(repo *repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// List 产品列表
func (s *ProductService) List(ctx context.Context, keyword string) ([]entity.Product, error) {
	return s.repo.FindAll(ctx, keyword)
}

// Get 产品详情
func (s *ProductService) Get(ctx context.Context, id uint) (*entity.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProductRequest 创建产品请求
type CreateProductRequest struct {
	ProductCode       string          `json:"product_code" binding:"required"`
	Description       string          `json:"description"`
	Model             string          `json:"model"`
	Brand             string          `json:"brand"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	MinStockThreshold int             `json:"min_stock_threshold"`
}

// Create 创建产品，初始库存为0（库存只能经入库单进入）
func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*entity.Product, error) {
	threshold := req.MinStockThreshold
	if threshold <= 0 {
		threshold = defaultMinStockThreshold
	}
	p := &entity.Product{
		ProductCode:       req.ProductCode,
		Description:       req.Description,
		Model:             req.Model,
		Brand:             req.Brand,
		UnitPrice:         req.UnitPrice,
		MinStockThreshold: threshold,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateDocumentNumberError{DocType: "product code", Number: req.ProductCode}
		}
		return nil, err
	}
	return p, nil
}
