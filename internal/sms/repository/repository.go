package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories SMS仓库集合
type Repositories struct {
	User       *UserRepository
	Product    *ProductRepository
	Customer   *CustomerRepository
	GRN        *GRNRepository
	Sales      *SalesRepository
	CreditNote *CreditNoteRepository
	IssueOrder *IssueOrderRepository
	Alert      *AlertRepository
}

// NewRepositories 创建SMS仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Product:    NewProductRepository(db),
		Customer:   NewCustomerRepository(db),
		GRN:        NewGRNRepository(db),
		Sales:      NewSalesRepository(db),
		CreditNote: NewCreditNoteRepository(db),
		IssueOrder: NewIssueOrderRepository(db),
		Alert:      NewAlertRepository(db),
	}
}
