package models

import "time"

// Referral is written once per redeemed invite code.
// ReferredID is unique: a user can only redeem one code.
type Referral struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReferrerID uint      `gorm:"not null;index" json:"referrer_id"`
	ReferredID uint      `gorm:"uniqueIndex;not null" json:"referred_id"`
	Reward     int64     `gorm:"not null;default:0" json:"reward"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Referral) TableName() string { return "referrals" }
