package repository

import (
	"context"

	"youngmoney/internal/models"

	"gorm.io/gorm"
)

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) WithTx(tx *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: tx}
}

func (r *WithdrawalRepository) Create(ctx context.Context, w *models.Withdrawal) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// ListByUserID returns withdrawals newest first; limit <= 0 means all.
func (r *WithdrawalRepository) ListByUserID(ctx context.Context, userID uint, limit int) ([]models.Withdrawal, error) {
	var list []models.Withdrawal
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&list).Error
	return list, err
}

// ListActiveQuickValues returns the quick-value allow-list.
func (r *WithdrawalRepository) ListActiveQuickValues(ctx context.Context) ([]models.WithdrawalQuickValue, error) {
	var list []models.WithdrawalQuickValue
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("value_amount ASC").Find(&list).Error
	return list, err
}

func (r *WithdrawalRepository) CreateQuickValue(ctx context.Context, q *models.WithdrawalQuickValue) error {
	return r.db.WithContext(ctx).Create(q).Error
}
