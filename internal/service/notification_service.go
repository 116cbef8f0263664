package service

import (
	"context"
	"fmt"

	"youngmoney/internal/domain"
	"youngmoney/internal/models"
	"youngmoney/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NotificationService writes in-app notifications. There is no push delivery.
type NotificationService struct {
	repo  *repository.NotificationRepository
	clock Clock
}

func NewNotificationService(repo *repository.NotificationRepository, clock Clock) *NotificationService {
	if clock == nil {
		clock = systemClock
	}
	return &NotificationService{repo: repo, clock: clock}
}

// WithTx returns a service whose writes join tx.
func (s *NotificationService) WithTx(tx *gorm.DB) *NotificationService {
	return &NotificationService{repo: s.repo.WithTx(tx), clock: s.clock}
}

func (s *NotificationService) Notify(ctx context.Context, userID uint, notifType, title, message string) error {
	err := s.repo.Create(ctx, &models.Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		CreatedAt: s.clock(),
	})
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *NotificationService) NotifyWithdrawalRequested(ctx context.Context, userID, withdrawalID uint, amount decimal.Decimal) error {
	return s.Notify(ctx, userID, domain.NotificationWithdrawalRequested, "Saque solicitado",
		fmt.Sprintf("Seu saque de R$ %s (ID: %d) está aguardando aprovação.", amount.StringFixed(2), withdrawalID))
}

func (s *NotificationService) NotifyReferralCredited(ctx context.Context, referrerID uint, invitee string, reward int64) error {
	return s.Notify(ctx, referrerID, domain.NotificationReferralCredited, "Convite aceito",
		fmt.Sprintf("%s usou seu código. Você ganhou %d pontos!", invitee, reward))
}

// List returns notifications newest first; limit <= 0 means 20.
func (s *NotificationService) List(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByUserID(ctx, userID, limit, 0)
}

// MarkRead marks one of userID's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	if notificationID == 0 {
		return ErrMissingField
	}
	_, err := s.repo.MarkRead(ctx, notificationID, userID, s.clock())
	return err
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
