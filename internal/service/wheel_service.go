package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"youngmoney/internal/domain"
	"youngmoney/internal/models"
	"youngmoney/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type WheelStatus struct {
	Greeting       string
	SpinsRemaining int64
	SpinsToday     int64
	MaxDailySpins  int64
	PrizeValues    []int64
	ServerTime     time.Time
}

type SpinResult struct {
	Greeting       string
	PrizeValue     int64
	PrizeIndex     int
	SpinsRemaining int64
	SpinsToday     int64
	MaxDailySpins  int64
	NewBalance     int64
	ServerTime     time.Time
}

// WheelService runs the prize wheel: uniform slot selection with a per-day quota.
type WheelService struct {
	db       *gorm.DB
	users    *repository.UserRepository
	spins    *repository.SpinRepository
	ledger   *repository.LedgerRepository
	settings *SettingsService
	clock    Clock
	pick     func(n int) int
}

func NewWheelService(db *gorm.DB, users *repository.UserRepository, spins *repository.SpinRepository, ledger *repository.LedgerRepository, settings *SettingsService, clock Clock) *WheelService {
	if clock == nil {
		clock = systemClock
	}
	return &WheelService{
		db:       db,
		users:    users,
		spins:    spins,
		ledger:   ledger,
		settings: settings,
		clock:    clock,
		pick:     rand.Intn,
	}
}

// Greeting maps a local hour to the wheel header: [5,12) morning, [12,18) afternoon, otherwise night.
func Greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return domain.GreetingMorning
	case hour >= 12 && hour < 18:
		return domain.GreetingAfternoon
	default:
		return domain.GreetingNight
	}
}

func remaining(max, used int64) int64 {
	if used >= max {
		return 0
	}
	return max - used
}

func (s *WheelService) Status(ctx context.Context, userID uint) (*WheelStatus, error) {
	ws, err := s.settings.Wheel(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	from, to := dayRange(now)
	count, err := s.spins.CountInRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("count spins: %w", err)
	}
	return &WheelStatus{
		Greeting:       Greeting(now.Hour()),
		SpinsRemaining: remaining(ws.MaxDailySpins, count),
		SpinsToday:     count,
		MaxDailySpins:  ws.MaxDailySpins,
		PrizeValues:    ws.PrizeValues,
		ServerTime:     now,
	}, nil
}

// Spin draws one slot and credits it. On ErrQuotaExhausted the returned result
// still carries the counters so the client can render them.
func (s *WheelService) Spin(ctx context.Context, userID uint) (*SpinResult, error) {
	ws, err := s.settings.Wheel(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	from, to := dayRange(now)
	res := &SpinResult{
		Greeting:      Greeting(now.Hour()),
		MaxDailySpins: ws.MaxDailySpins,
		ServerTime:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		u, err := users.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		count, err := s.spins.WithTx(tx).CountInRange(ctx, userID, from, to)
		if err != nil {
			return fmt.Errorf("count spins: %w", err)
		}
		res.SpinsToday = count
		if count >= ws.MaxDailySpins {
			return ErrQuotaExhausted
		}

		idx := s.pick(len(ws.PrizeValues))
		value := ws.PrizeValues[idx]
		if err := s.spins.WithTx(tx).Create(ctx, &models.SpinRecord{
			UserID:     userID,
			PrizeIndex: idx,
			PrizeValue: value,
			CreatedAt:  now,
		}); err != nil {
			return fmt.Errorf("record spin: %w", err)
		}
		if err := users.CreditPoints(ctx, userID, value); err != nil {
			return fmt.Errorf("credit points: %w", err)
		}
		if err := s.ledger.WithTx(tx).Append(ctx, &models.PointsHistory{
			UserID:      userID,
			Points:      value,
			Reason:      domain.ReasonSpin,
			Description: fmt.Sprintf(domain.DescSpinFormat, value),
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("append ledger: %w", err)
		}

		res.PrizeIndex = idx
		res.PrizeValue = value
		res.SpinsToday = count + 1
		res.NewBalance = u.Points + value
		return nil
	})
	res.SpinsRemaining = remaining(ws.MaxDailySpins, res.SpinsToday)
	if err != nil {
		if errors.Is(err, ErrQuotaExhausted) {
			return res, err
		}
		return nil, err
	}
	log.Info().Uint("user_id", userID).Int("prize_index", res.PrizeIndex).Int64("prize_value", res.PrizeValue).Msg("[spin] granted")
	return res, nil
}
