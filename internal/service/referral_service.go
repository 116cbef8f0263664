package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"youngmoney/internal/domain"
	"youngmoney/internal/models"
	"youngmoney/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type InviteResult struct {
	ReferrerUsername string
	Reward           int64
}

type MyCode struct {
	ReferralCode string
	InviteCount  int64
	TotalEarned  int64
}

// ReferralService handles invite-code redemption. The reward goes to the referrer.
type ReferralService struct {
	db            *gorm.DB
	users         *repository.UserRepository
	referralRepo  *repository.ReferralRepository
	ledger        *repository.LedgerRepository
	notifications *NotificationService
	settings      *SettingsService
	clock         Clock
}

func NewReferralService(
	db *gorm.DB,
	users *repository.UserRepository,
	referralRepo *repository.ReferralRepository,
	ledger *repository.LedgerRepository,
	notifications *NotificationService,
	settings *SettingsService,
	clock Clock,
) *ReferralService {
	if clock == nil {
		clock = systemClock
	}
	return &ReferralService{
		db:            db,
		users:         users,
		referralRepo:  referralRepo,
		ledger:        ledger,
		notifications: notifications,
		settings:      settings,
		clock:         clock,
	}
}

// ValidateInviteCode redeems code for userID. Checks run in order: user exists,
// user has not redeemed before, code resolves, code is not the user's own.
func (s *ReferralService) ValidateInviteCode(ctx context.Context, userID uint, code string) (*InviteResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrMissingInviteCode
	}
	rs, err := s.settings.Reward(ctx)
	if err != nil {
		return nil, err
	}
	reward := rs.InviteReward
	now := s.clock()

	var result InviteResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		u, err := users.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		if u.HasUsedInviteCode {
			return ErrAlreadyUsedCode
		}
		referrer, err := users.GetByReferralCode(ctx, code)
		if err != nil {
			return notFoundAs(err, ErrInvalidCode)
		}
		if referrer.ID == u.ID {
			return ErrSelfReferral
		}

		marked, err := users.MarkInviteUsed(ctx, u.ID, code)
		if err != nil {
			return fmt.Errorf("mark invite used: %w", err)
		}
		if !marked {
			return ErrAlreadyUsedCode
		}
		if err := users.CreditEarned(ctx, referrer.ID, reward); err != nil {
			return fmt.Errorf("credit referrer: %w", err)
		}
		if err := s.referralRepo.WithTx(tx).CreateReferral(ctx, &models.Referral{
			ReferrerID: referrer.ID,
			ReferredID: u.ID,
			Reward:     reward,
			CreatedAt:  now,
		}); err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyUsedCode
			}
			return fmt.Errorf("create referral: %w", err)
		}
		if err := s.ledger.WithTx(tx).Append(ctx, &models.PointsHistory{
			UserID:      referrer.ID,
			Points:      reward,
			Reason:      domain.ReasonReferral,
			Description: fmt.Sprintf(domain.DescInviteFormat, u.DisplayName()),
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("append ledger: %w", err)
		}
		if err := s.notifications.WithTx(tx).NotifyReferralCredited(ctx, referrer.ID, u.DisplayName(), reward); err != nil {
			return err
		}
		result = InviteResult{ReferrerUsername: referrer.Username, Reward: reward}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("user_id", userID).Str("code", code).Int64("reward", reward).Msg("[invite] redeemed")
	return &result, nil
}

// MyCode returns the caller's own code with how many users redeemed it.
func (s *ReferralService) MyCode(ctx context.Context, userID uint) (*MyCode, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	count, err := s.referralRepo.CountByReferrerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count referrals: %w", err)
	}
	return &MyCode{ReferralCode: u.ReferralCode, InviteCount: count, TotalEarned: u.TotalEarned}, nil
}
