package models

import (
	"time"

	"gorm.io/gorm"
)

// Poll 表示一場投票
type Poll struct {
	gorm.Model
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Question    string     `gorm:"type:text;not null" json:"question"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	Status      PollStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedBy   uint       `json:"created_by"`                                 // 建立者（管理員）的用戶 ID
	Options     []Option   `gorm:"foreignKey:PollID" json:"options,omitempty"` // 投票選項列表
}

// PollStatus 定義投票狀態的類型
type PollStatus string

const (
	PollStatusPending PollStatus = "pending" // 尚未開放投票
	PollStatusOngoing PollStatus = "ongoing" // 投票進行中
	PollStatusEnded   PollStatus = "ended"   // 投票已結束，為終止狀態
)

// Option 表示投票中的一個選項
// 候選人模式下選項的 Label 即候選人的顯示名稱
type Option struct {
	gorm.Model
	PollID uint   `gorm:"index;not null" json:"poll_id"`
	Label  string `gorm:"not null" json:"label"`
}
