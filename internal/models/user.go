package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Email             *string         `gorm:"uniqueIndex;size:255" json:"email"`     // nil for device-only accounts
	DeviceID          *string         `gorm:"uniqueIndex;size:255" json:"device_id"` // nil until a device logs in
	Username          string          `gorm:"size:255;not null;default:''" json:"username"`
	PasswordHash      string          `gorm:"size:255" json:"-"`
	Points            int64           `gorm:"not null;default:0;index" json:"points"`
	DailyPoints       int64           `gorm:"not null;default:0;index" json:"daily_points"`
	TotalEarned       int64           `gorm:"not null;default:0" json:"total_earned"`
	TotalWithdrawn    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_withdrawn"`
	ReferralCode      string          `gorm:"uniqueIndex;size:20;not null" json:"referral_code"`
	ReferredBy        *string         `gorm:"size:20" json:"referred_by"`
	HasUsedInviteCode bool            `gorm:"not null;default:false" json:"has_used_invite_code"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// EmailValue returns the email or "" for device-only accounts.
func (u *User) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// DisplayName falls back to a generic label when the user never set a username.
func (u *User) DisplayName() string {
	if u.Username == "" {
		return "Usuário"
	}
	return u.Username
}
