package repository

import (
	"context"

	"youngmoney/internal/models"

	"gorm.io/gorm"
)

type MonetagRepository struct {
	db *gorm.DB
}

func NewMonetagRepository(db *gorm.DB) *MonetagRepository {
	return &MonetagRepository{db: db}
}

func (r *MonetagRepository) CreateEvent(ctx context.Context, e *models.MonetagEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ListByEmail returns all events attributed to email.
func (r *MonetagRepository) ListByEmail(ctx context.Context, email string) ([]models.MonetagEvent, error) {
	var list []models.MonetagEvent
	err := r.db.WithContext(ctx).Where("user_email = ?", email).Order("created_at DESC").Find(&list).Error
	return list, err
}
