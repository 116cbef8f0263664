package repository

import (
	"context"
	"time"

	"youngmoney/internal/models"

	"gorm.io/gorm"
)

// LedgerRepository reads and appends points_history. There is no update or delete.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) WithTx(tx *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: tx}
}

func (r *LedgerRepository) Append(ctx context.Context, e *models.PointsHistory) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ExistsInRange reports whether userID has an entry with reason in [from, to).
func (r *LedgerRepository) ExistsInRange(ctx context.Context, userID uint, reason string, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PointsHistory{}).
		Where("user_id = ? AND reason = ? AND created_at >= ? AND created_at < ?", userID, reason, from, to).
		Count(&count).Error
	return count > 0, err
}

func (r *LedgerRepository) ListByUserID(ctx context.Context, userID uint, limit int) ([]models.PointsHistory, error) {
	var list []models.PointsHistory
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Find(&list).Error
	return list, err
}

func (r *LedgerRepository) SumByUserID(ctx context.Context, userID uint) (int64, error) {
	var total struct{ Total int64 }
	err := r.db.WithContext(ctx).Model(&models.PointsHistory{}).
		Select("COALESCE(SUM(points), 0) as total").
		Where("user_id = ?", userID).Scan(&total).Error
	return total.Total, err
}
