package entity

import "time"

// UserRole 用户角色
const (
	RoleAdmin            = "Admin"            // 管理员
	RoleInventoryManager = "InventoryManager" // 库存管理员
	RoleRep              = "Rep"              // 业务代表
)

// User 用户实体
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:100;not null"`
	Role         string    `json:"role" gorm:"size:20;not null;default:Rep"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "sms_users"
}
