package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"youngmoney/internal/domain"
	"youngmoney/internal/models"
	"youngmoney/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WithdrawalResult struct {
	WithdrawalID uint
	OrderID      string
	Amount       decimal.Decimal
	Status       string
}

// LimitError carries the configured bound a rejected amount fell outside of.
type LimitError struct {
	Err   error
	Limit decimal.Decimal
}

func (e *LimitError) Error() string { return e.Err.Error() + " (" + e.Limit.StringFixed(2) + ")" }
func (e *LimitError) Unwrap() error { return e.Err }

// WithdrawalService debits points and creates pending PIX payout requests.
type WithdrawalService struct {
	db            *gorm.DB
	users         *repository.UserRepository
	withdrawals   *repository.WithdrawalRepository
	ledger        *repository.LedgerRepository
	notifications *NotificationService
	settings      *SettingsService
	clock         Clock
}

func NewWithdrawalService(
	db *gorm.DB,
	users *repository.UserRepository,
	withdrawals *repository.WithdrawalRepository,
	ledger *repository.LedgerRepository,
	notifications *NotificationService,
	settings *SettingsService,
	clock Clock,
) *WithdrawalService {
	if clock == nil {
		clock = systemClock
	}
	return &WithdrawalService{
		db:            db,
		users:         users,
		withdrawals:   withdrawals,
		ledger:        ledger,
		notifications: notifications,
		settings:      settings,
		clock:         clock,
	}
}

// Request validates in order: amount, payout info, balance, then quick value or
// [min, max]. An amount that is both unaffordable and out of range reports
// ErrInsufficientBalance.
func (s *WithdrawalService) Request(ctx context.Context, userID uint, amount decimal.Decimal, pixType, pixKey string) (*WithdrawalResult, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	pixType = strings.TrimSpace(pixType)
	pixKey = strings.TrimSpace(pixKey)
	if pixType == "" || pixKey == "" {
		return nil, ErrMissingPayoutInfo
	}
	limits, err := s.settings.Withdrawal(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	// Points are whole; a fractional amount consumes the next whole point.
	debit := amount.Ceil().IntPart()

	var result WithdrawalResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		u, err := users.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		if u.Points < debit {
			return ErrInsufficientBalance
		}
		if !limits.IsQuickValue(amount) && (amount.LessThan(limits.Min) || amount.GreaterThan(limits.Max)) {
			if amount.LessThan(limits.Min) {
				return &LimitError{Err: ErrBelowMinimum, Limit: limits.Min}
			}
			return &LimitError{Err: ErrAboveMaximum, Limit: limits.Max}
		}

		if err := users.DebitPoints(ctx, userID, debit, amount); err != nil {
			if errors.Is(err, repository.ErrInsufficientPoints) {
				return ErrInsufficientBalance
			}
			return fmt.Errorf("debit points: %w", err)
		}
		w := &models.Withdrawal{
			UserID:    userID,
			OrderID:   "wd-" + uuid.New().String(),
			Amount:    amount,
			PixType:   pixType,
			PixKey:    pixKey,
			Status:    domain.WithdrawalStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.withdrawals.WithTx(tx).Create(ctx, w); err != nil {
			return fmt.Errorf("create withdrawal: %w", err)
		}
		if err := s.ledger.WithTx(tx).Append(ctx, &models.PointsHistory{
			UserID:      userID,
			Points:      -debit,
			Reason:      domain.ReasonWithdrawal,
			Description: fmt.Sprintf(domain.DescWithdrawFormat, w.ID),
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("append ledger: %w", err)
		}
		if err := s.notifications.WithTx(tx).NotifyWithdrawalRequested(ctx, userID, w.ID, amount); err != nil {
			return err
		}
		result = WithdrawalResult{WithdrawalID: w.ID, OrderID: w.OrderID, Amount: amount, Status: w.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("user_id", userID).Uint("withdrawal_id", result.WithdrawalID).Str("amount", amount.String()).Msg("[withdrawal] requested")
	return &result, nil
}

// History returns all withdrawals, newest first.
func (s *WithdrawalService) History(ctx context.Context, userID uint) ([]models.Withdrawal, error) {
	return s.withdrawals.ListByUserID(ctx, userID, 0)
}

// Recent returns the last five withdrawals.
func (s *WithdrawalService) Recent(ctx context.Context, userID uint) ([]models.Withdrawal, error) {
	return s.withdrawals.ListByUserID(ctx, userID, 5)
}
