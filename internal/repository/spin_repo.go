package repository

import (
	"context"
	"time"

	"youngmoney/internal/models"

	"gorm.io/gorm"
)

type SpinRepository struct {
	db *gorm.DB
}

func NewSpinRepository(db *gorm.DB) *SpinRepository {
	return &SpinRepository{db: db}
}

func (r *SpinRepository) WithTx(tx *gorm.DB) *SpinRepository {
	return &SpinRepository{db: tx}
}

func (r *SpinRepository) Create(ctx context.Context, s *models.SpinRecord) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// CountInRange counts userID's spins in [from, to).
func (r *SpinRepository) CountInRange(ctx context.Context, userID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SpinRecord{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Count(&count).Error
	return count, err
}
