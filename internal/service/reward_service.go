package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"youngmoney/internal/domain"
	"youngmoney/internal/models"
	"youngmoney/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CheckinResult struct {
	Reward     int64
	NewBalance int64
}

// Transaction is a points_history row seen as a credit or debit.
type Transaction struct {
	ID          uint   `json:"id"`
	Type        string `json:"type"`
	Points      int64  `json:"points"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// RewardService grants check-in and manual credits and serves the ledger reads.
type RewardService struct {
	db       *gorm.DB
	users    *repository.UserRepository
	ledger   *repository.LedgerRepository
	settings *SettingsService
	clock    Clock
}

func NewRewardService(db *gorm.DB, users *repository.UserRepository, ledger *repository.LedgerRepository, settings *SettingsService, clock Clock) *RewardService {
	if clock == nil {
		clock = systemClock
	}
	return &RewardService{db: db, users: users, ledger: ledger, settings: settings, clock: clock}
}

// Checkin grants the daily check-in reward once per local calendar day.
func (s *RewardService) Checkin(ctx context.Context, userID uint) (*CheckinResult, error) {
	rs, err := s.settings.Reward(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	from, to := dayRange(now)
	reward := rs.CheckinReward

	var result CheckinResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		ledger := s.ledger.WithTx(tx)

		u, err := users.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		done, err := ledger.ExistsInRange(ctx, userID, domain.ReasonCheckin, from, to)
		if err != nil {
			return fmt.Errorf("check today's check-in: %w", err)
		}
		if done {
			return ErrAlreadyCheckedIn
		}
		if err := users.CreditPoints(ctx, userID, reward); err != nil {
			return fmt.Errorf("credit points: %w", err)
		}
		key := checkinDedupeKey(userID, now)
		if err := ledger.Append(ctx, &models.PointsHistory{
			UserID:      userID,
			Points:      reward,
			Reason:      domain.ReasonCheckin,
			Description: domain.DescCheckin,
			DedupeKey:   &key,
			CreatedAt:   now,
		}); err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyCheckedIn
			}
			return fmt.Errorf("append ledger: %w", err)
		}
		result = CheckinResult{Reward: reward, NewBalance: u.Points + reward}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("user_id", userID).Int64("reward", reward).Msg("[checkin] granted")
	return &result, nil
}

// AddPoints is the administrative manual credit. Description defaults when empty.
// Points also count toward the daily ranking.
func (s *RewardService) AddPoints(ctx context.Context, userID uint, points int64, description string) error {
	if userID == 0 {
		return ErrMissingField
	}
	if points <= 0 {
		return ErrInvalidAmount
	}
	if description == "" {
		description = domain.DescAdminDefault
	}
	now := s.clock()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		if _, err := users.GetByIDForUpdate(ctx, userID); err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		if err := users.CreditPoints(ctx, userID, points); err != nil {
			return fmt.Errorf("credit points: %w", err)
		}
		return s.ledger.WithTx(tx).Append(ctx, &models.PointsHistory{
			UserID:      userID,
			Points:      points,
			Reason:      domain.ReasonAdmin,
			Description: description,
			CreatedAt:   now,
		})
	})
}

// History returns the newest ledger entries; limit <= 0 means 50.
func (s *RewardService) History(ctx context.Context, userID uint, limit int) ([]models.PointsHistory, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.ledger.ListByUserID(ctx, userID, limit)
}

// Transactions serves the credit/debit view of the same ledger.
func (s *RewardService) Transactions(ctx context.Context, userID uint, limit int) ([]Transaction, error) {
	entries, err := s.History(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, 0, len(entries))
	for _, e := range entries {
		t := Transaction{
			ID:          e.ID,
			Type:        domain.TxTypeCredit,
			Points:      e.Points,
			Reason:      e.Reason,
			Description: e.Description,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}
		if e.Points < 0 {
			t.Type = domain.TxTypeDebit
		}
		out = append(out, t)
	}
	return out, nil
}

// Balance returns the user and the sum of their ledger, which must equal Points
// for accounts whose every mutation went through the ledger.
func (s *RewardService) Balance(ctx context.Context, userID uint) (*models.User, int64, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}
	sum, err := s.ledger.SumByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return u, sum, nil
}
