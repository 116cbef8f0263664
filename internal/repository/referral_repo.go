package repository

import (
	"context"

	"youngmoney/internal/models"

	"gorm.io/gorm"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) WithTx(tx *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: tx}
}

// CreateReferral persists a new referral relationship.
func (r *ReferralRepository) CreateReferral(ctx context.Context, referral *models.Referral) error {
	return r.db.WithContext(ctx).Create(referral).Error
}

// CountByReferrerID returns how many users redeemed referrerID's code.
func (r *ReferralRepository) CountByReferrerID(ctx context.Context, referrerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Referral{}).Where("referrer_id = ?", referrerID).Count(&count).Error
	return count, err
}

