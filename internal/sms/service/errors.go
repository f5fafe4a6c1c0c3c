package service

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials 登录校验失败
var ErrInvalidCredentials = errors.New("invalid email or password")

// DuplicateDocumentNumberError 单据编号冲突，由唯一索引在提交时裁决（不做预检查）
type DuplicateDocumentNumberError struct {
	DocType string
	Number  string
}

func (e *DuplicateDocumentNumberError) Error() string {
	return fmt.Sprintf("%s number %q already exists", e.DocType, e.Number)
}

// InsufficientStockError 销售/领用数量超过当前库存
type InsufficientStockError struct {
	ProductCode string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductCode, e.Requested, e.Available)
}

// ReturnExceedsOriginalError 退货数量超过原发票可退数量（已扣除历史贷项单的退货量）
type ReturnExceedsOriginalError struct {
	ProductCode string
	Returnable  int
	Requested   int
}

func (e *ReturnExceedsOriginalError) Error() string {
	return fmt.Sprintf("return quantity for product %s exceeds original invoice quantity: requested %d, returnable %d",
		e.ProductCode, e.Requested, e.Returnable)
}

// InvoiceNotFoundError 原始发票不存在或没有行项
type InvoiceNotFoundError struct {
	InvoiceID uint
}

func (e *InvoiceNotFoundError) Error() string {
	return fmt.Sprintf("invoice %d not found", e.InvoiceID)
}

// ProductNotFoundError 行项引用的产品不存在
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}
