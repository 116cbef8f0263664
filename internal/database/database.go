package database

import (
	"fmt"
	"strconv"

	"youngmoney/config"
	"youngmoney/internal/domain"
	"youngmoney/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
		TranslateError: true,                                 // surface duplicate keys as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PointsHistory{},
		&models.SpinRecord{},
		&models.Referral{},
		&models.Withdrawal{},
		&models.WithdrawalQuickValue{},
		&models.SystemSetting{},
		&models.RouletteSetting{},
		&models.ActiveSession{},
		&models.MonetagEvent{},
		&models.Notification{},
	)
}

// DefaultSystemSettings are seeded into system_settings when missing.
func DefaultSystemSettings() map[string]string {
	return map[string]string{
		domain.SettingCheckinReward: strconv.Itoa(domain.DefaultCheckinReward),
		domain.SettingInviteReward:  strconv.Itoa(domain.DefaultInviteReward),
		domain.SettingMinWithdrawal: strconv.Itoa(domain.DefaultMinWithdrawal),
		domain.SettingMaxWithdrawal: strconv.Itoa(domain.DefaultMaxWithdrawal),
	}
}

// DefaultRouletteSettings are seeded into roulette_settings when missing.
func DefaultRouletteSettings() map[string]string {
	m := map[string]string{
		domain.SettingMaxDailySpins: strconv.Itoa(domain.DefaultMaxDailySpins),
	}
	for i, v := range domain.DefaultPrizeValues {
		m[fmt.Sprintf("%s%d", domain.SettingPrizeKeyPrefix, i)] = strconv.FormatInt(v, 10)
	}
	return m
}
