package service

import (
	"context"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"github.com/bitfantasy/nimo-sms/internal/sms/repository"
)

// CustomerService 客户服务
type CustomerService struct {
	repo *repository.CustomerRepository
}

func NewCustomerService(repo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// List 客户列表
func (s *CustomerService) List(ctx context.Context) ([]entity.Customer, error) {
	return s.repo.FindAll(ctx)
}

// CustomerRequest 创建/更新客户请求
type CustomerRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CompanyName   string `json:"company_name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
}

// Create 创建客户
func (s *CustomerService) Create(ctx context.Context, req *CustomerRequest) (*entity.Customer, error) {
	c := &entity.Customer{
		CustomerName:  req.CustomerName,
		CompanyName:   req.CompanyName,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update 更新客户
func (s *CustomerService) Update(ctx context.Context, id uint, req *CustomerRequest) (*entity.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.CustomerName = req.CustomerName
	c.CompanyName = req.CompanyName
	c.Address = req.Address
	c.ContactNumber = req.ContactNumber
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete 删除客户
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
