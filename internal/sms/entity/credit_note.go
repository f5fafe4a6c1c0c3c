package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditNote 退货贷项单，针对某张原始发票的退货，库存反向增加
type CreditNote struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	CreditNoteNumber string          `json:"credit_note_number" gorm:"size:50;not null;uniqueIndex"`
	InvoiceID        uint            `json:"invoice_id" gorm:"not null;index"`
	CustomerID       uint            `json:"customer_id" gorm:"not null;index"`
	DateOfReturn     time.Time       `json:"date_of_return" gorm:"not null"`
	Remarks          string          `json:"remarks" gorm:"type:text"`
	TotalBillValue   decimal.Decimal `json:"total_bill_value" gorm:"type:decimal(14,2);not null"`
	DiscountPercent  decimal.Decimal `json:"discount_percent" gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount   decimal.Decimal `json:"discount_amount" gorm:"type:decimal(14,2);not null;default:0"`
	GrandTotal       decimal.Decimal `json:"grand_total" gorm:"type:decimal(14,2);not null"`
	CreatedAt        time.Time       `json:"created_at"`

	Invoice *SalesInvoice    `json:"invoice,omitempty" gorm:"foreignKey:InvoiceID"`
	Items   []CreditNoteItem `json:"items,omitempty" gorm:"foreignKey:CreditNoteID"`
}

func (CreditNote) TableName() string {
	return "sms_credit_notes"
}

// CreditNoteItem 贷项单行项，描述字段为退货时的产品快照
type CreditNoteItem struct {
	ID                    uint            `json:"id" gorm:"primaryKey"`
	CreditNoteID          uint            `json:"credit_note_id" gorm:"not null;index"`
	ProductID             uint            `json:"product_id" gorm:"not null;index"`
	PartNumber            string          `json:"part_number" gorm:"size:100"`
	Description           string          `json:"description" gorm:"size:500"`
	Brand                 string          `json:"brand" gorm:"size:100"`
	Model                 string          `json:"model" gorm:"size:100"`
	AdditionalDescription string          `json:"additional_description" gorm:"size:500"`
	Quantity              int             `json:"quantity" gorm:"not null"`
	UnitPrice             decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	TotalValue            decimal.Decimal `json:"total_value" gorm:"type:decimal(14,2);not null"`
}

func (CreditNoteItem) TableName() string {
	return "sms_credit_note_items"
}
