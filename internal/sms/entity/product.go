package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product 产品实体，current_stock 由台账引擎在事务内维护，任何已提交单据都不得使其为负
type Product struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	ProductCode       string          `json:"product_code" gorm:"size:50;not null;uniqueIndex"`
	Description       string          `json:"description" gorm:"size:500"`
	Model             string          `json:"model" gorm:"size:100"`
	Brand             string          `json:"brand" gorm:"size:100"`
	UnitPrice         decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	CurrentStock      int             `json:"current_stock" gorm:"not null;default:0"`
	MinStockThreshold int             `json:"min_stock_threshold" gorm:"not null;default:10"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "sms_products"
}
