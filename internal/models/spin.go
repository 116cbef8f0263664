package models

import "time"

type SpinRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_spin_history_user_created,priority:1" json:"user_id"`
	PrizeIndex int       `gorm:"not null" json:"prize_index"`
	PrizeValue int64     `gorm:"not null" json:"prize_value"`
	CreatedAt  time.Time `gorm:"index:idx_spin_history_user_created,priority:2" json:"created_at"`
}

func (SpinRecord) TableName() string {
	return "spin_history"
}
