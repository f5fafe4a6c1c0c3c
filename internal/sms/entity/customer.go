package entity

import "time"

// Customer 客户实体，由单据引用但不被引擎修改
type Customer struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CustomerName  string    `json:"customer_name" gorm:"size:200;not null"`
	CompanyName   string    `json:"company_name" gorm:"size:200"`
	Address       string    `json:"address" gorm:"size:500"`
	ContactNumber string    `json:"contact_number" gorm:"size:50"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Customer) TableName() string {
	return "sms_customers"
}
