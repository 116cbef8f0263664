package repository

import (
	"context"
	"errors"
	"time"

	"youngmoney/internal/models"

	"gorm.io/gorm"
)

// SessionRepository stores ad-view sessions used to attribute postbacks.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *models.ActiveSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// LatestActive returns the most recently created session still valid at now, or nil.
func (r *SessionRepository) LatestActive(ctx context.Context, now time.Time) (*models.ActiveSession, error) {
	var s models.ActiveSession
	err := r.db.WithContext(ctx).Where("expires_at > ?", now).
		Order("created_at DESC").Order("id DESC").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteExpired removes sessions whose expires_at is before now.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.ActiveSession{})
	return res.RowsAffected, res.Error
}

func (r *SessionRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ActiveSession{}).Where("expires_at > ?", now).Count(&count).Error
	return count, err
}
