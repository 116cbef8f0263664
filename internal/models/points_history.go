package models

import "time"

// PointsHistory is the single append-only points ledger.
// Points is signed: positive = credit, negative = debit.
// DedupeKey is set only for once-per-period grants (daily check-in) and is unique.
type PointsHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_points_history_user_created,priority:1" json:"user_id"`
	Points      int64     `gorm:"not null" json:"points"`
	Reason      string    `gorm:"size:20;not null;index" json:"reason"`
	Description string    `gorm:"size:255" json:"description"`
	DedupeKey   *string   `gorm:"uniqueIndex;size:64" json:"-"`
	CreatedAt   time.Time `gorm:"index:idx_points_history_user_created,priority:2" json:"created_at"`
}

func (PointsHistory) TableName() string {
	return "points_history"
}
