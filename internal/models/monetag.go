package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActiveSession bridges an ad view to the postback that arrives later.
type ActiveSession struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SessionID string    `gorm:"size:36;uniqueIndex;not null" json:"session_id"`
	UserID    string    `gorm:"size:255;not null;index" json:"user_id"`
	UserEmail string    `gorm:"size:255;not null" json:"user_email"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ActiveSession) TableName() string { return "active_sessions" }

type MonetagEvent struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    string          `gorm:"size:255;not null;index" json:"user_id"`
	UserEmail string          `gorm:"size:255;index" json:"user_email"`
	EventType string          `gorm:"size:50;not null;index" json:"event_type"`
	Revenue   decimal.Decimal `gorm:"type:decimal(10,6);not null;default:0" json:"revenue"`
	CreatedAt time.Time       `json:"created_at"`
}

func (MonetagEvent) TableName() string { return "monetag_events" }
