package entity

import "time"

// IssueOrder 领用单，向业务代表发放库存，只扣减不计价
type IssueOrder struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	IssueOrderNumber string    `json:"issue_order_number" gorm:"size:50;not null;uniqueIndex"`
	RepID            uint      `json:"rep_id" gorm:"not null;index"`
	DateOfOrder      time.Time `json:"date_of_order" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`

	Rep   *User            `json:"rep,omitempty" gorm:"foreignKey:RepID"`
	Items []IssueOrderItem `json:"items,omitempty" gorm:"foreignKey:IssueOrderID"`
}

func (IssueOrder) TableName() string {
	return "sms_issue_orders"
}

// IssueOrderItem 领用单行项
type IssueOrderItem struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	IssueOrderID   uint `json:"issue_order_id" gorm:"not null;index"`
	ProductID      uint `json:"product_id" gorm:"not null;index"`
	QuantityIssued int  `json:"quantity_issued" gorm:"not null"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (IssueOrderItem) TableName() string {
	return "sms_issue_order_items"
}
