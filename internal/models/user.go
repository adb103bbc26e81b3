package models

import (
	"gorm.io/gorm"
)

// User 表示系統中的用戶
type User struct {
	gorm.Model          // 內嵌 gorm.Model，提供 ID、CreatedAt、UpdatedAt 和 DeletedAt 字段
	Name       string   `gorm:"not null" json:"name"`              // 顯示名稱
	Email      string   `gorm:"uniqueIndex;not null" json:"email"` // 信箱，必須唯一
	Password   string   `gorm:"not null" json:"-"`                 // 密碼雜湊，json 序列化時會被忽略
	Role       UserRole `gorm:"type:varchar(20);not null" json:"role"`
}

// UserRole 定義用戶角色的類型
type UserRole string

const (
	RoleAdmin     UserRole = "admin"     // 管理員，可建立與結束投票
	RoleCandidate UserRole = "candidate" // 候選人，可被列為投票選項
	RoleVoter     UserRole = "voter"     // 投票者
)

// ValidRole 檢查角色是否為系統支援的角色
func ValidRole(role UserRole) bool {
	switch role {
	case RoleAdmin, RoleCandidate, RoleVoter:
		return true
	}
	return false
}
