package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoice 销售发票，customer_name 为开票时的客户快照
type SalesInvoice struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	InvoiceNumber string          `json:"invoice_number" gorm:"size:50;not null;uniqueIndex"`
	CustomerID    *uint           `json:"customer_id" gorm:"index"`
	CustomerName  string          `json:"customer_name" gorm:"size:200;not null"`
	DateOfSale    time.Time       `json:"date_of_sale" gorm:"not null"`
	Discount      decimal.Decimal `json:"discount" gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(14,2);not null"`
	CreatedAt     time.Time       `json:"created_at"`

	Customer *Customer          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items    []SalesInvoiceItem `json:"items,omitempty" gorm:"foreignKey:InvoiceID"`
}

func (SalesInvoice) TableName() string {
	return "sms_sales_invoices"
}

// SalesInvoiceItem 发票行项，按代理键引用产品
type SalesInvoiceItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	InvoiceID    uint            `json:"invoice_id" gorm:"not null;index"`
	ProductID    uint            `json:"product_id" gorm:"not null;index"`
	QuantitySold int             `json:"quantity_sold" gorm:"not null"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(14,2);not null"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (SalesInvoiceItem) TableName() string {
	return "sms_sales_invoice_items"
}
