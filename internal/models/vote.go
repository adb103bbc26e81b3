package models

import (
	"gorm.io/gorm"
)

// Vote 表示一筆投票紀錄，寫入後不會被修改或刪除
// (poll_id, voter_id) 的唯一索引保證每位投票者在同一場投票中最多投一票，
// 並在並發請求下由資料庫做最終裁決
type Vote struct {
	gorm.Model
	PollID   uint `gorm:"not null;uniqueIndex:idx_votes_poll_voter" json:"poll_id"`
	VoterID  uint `gorm:"not null;uniqueIndex:idx_votes_poll_voter" json:"voter_id"`
	OptionID uint `gorm:"not null" json:"option_id"`
}
