package models

import "time"

// SystemSetting stores admin-configurable key/value settings.
type SystemSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;uniqueIndex;size:100;not null" json:"key"`
	Value     string    `gorm:"column:setting_value;size:255;not null;default:''" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SystemSetting) TableName() string { return "system_settings" }

// RouletteSetting holds the wheel quota and prize_<i> slot overrides.
type RouletteSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;uniqueIndex;size:100;not null" json:"key"`
	Value     string    `gorm:"column:setting_value;size:255;not null;default:''" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RouletteSetting) TableName() string { return "roulette_settings" }
