package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/nimo-sms/internal/sms/entity"
	"gorm.io/gorm"
)

// CustomerRepository 客户仓库
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// FindAll 查询客户列表，按客户名排序
func (r *CustomerRepository) FindAll(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).Order("customer_name ASC").Find(&customers).Error
	return customers, err
}

// FindByID 根据ID查找客户
func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var c entity.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create 创建客户
func (r *CustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// Update 更新客户
func (r *CustomerRepository) Update(ctx context.Context, c *entity.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete 删除客户
func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Customer{}).Error
}
