package entity

import "time"

// AlertStatus 预警状态
const (
	AlertStatusActive   = "active"
	AlertStatusResolved = "resolved"
)

// Alert 低库存预警，销售提交后库存低于阈值时由引擎自动写入
type Alert struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Status    string    `json:"status" gorm:"size:20;not null;default:active"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (Alert) TableName() string {
	return "sms_alerts"
}
