package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Withdrawal struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	OrderID   string          `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PixType   string          `gorm:"size:50;not null" json:"pix_type"`
	PixKey    string          `gorm:"size:255;not null" json:"pix_key"`
	Status    string          `gorm:"size:20;not null;index" json:"status"` // pending, approved, rejected
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

// WithdrawalQuickValue is a pre-approved amount that skips the min/max range check.
type WithdrawalQuickValue struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ValueAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	IsActive    bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (WithdrawalQuickValue) TableName() string {
	return "withdrawal_quick_values"
}
