package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GRN 入库单（Goods Received Note），提交后不可修改
type GRN struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	GRNNumber    string          `json:"grn_number" gorm:"size:50;not null;uniqueIndex"`
	SupplierName string          `json:"supplier_name" gorm:"size:200;not null"`
	DateReceived time.Time       `json:"date_received" gorm:"not null"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:decimal(14,2);not null"`
	CreatedAt    time.Time       `json:"created_at"`

	Items []GRNItem `json:"items,omitempty" gorm:"foreignKey:GRNID"`
}

func (GRN) TableName() string {
	return "sms_grns"
}

// GRNItem 入库单行项，按业务编码引用产品（产品可能由本行首次创建）
type GRNItem struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	GRNID              uint            `json:"grn_id" gorm:"not null;index"`
	ProductCode        string          `json:"product_code" gorm:"size:50;not null"`
	ProductDescription string          `json:"product_description" gorm:"size:500"`
	Model              string          `json:"model" gorm:"size:100"`
	Brand              string          `json:"brand" gorm:"size:100"`
	QuantityReceived   int             `json:"quantity_received" gorm:"not null"`
	PricePerUnit       decimal.Decimal `json:"price_per_unit" gorm:"type:decimal(12,2);not null"`
	Total              decimal.Decimal `json:"total" gorm:"type:decimal(14,2);not null"`
}

func (GRNItem) TableName() string {
	return "sms_grn_items"
}
