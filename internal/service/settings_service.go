package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"youngmoney/internal/domain"
	"youngmoney/internal/models"
	"youngmoney/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type RewardSettings struct {
	CheckinReward int64
	InviteReward  int64
}

type WheelSettings struct {
	MaxDailySpins int64
	PrizeValues   []int64
}

type WithdrawalSettings struct {
	Min         decimal.Decimal
	Max         decimal.Decimal
	QuickValues []decimal.Decimal
}

// IsQuickValue reports whether amount equals an active quick value.
func (w WithdrawalSettings) IsQuickValue(amount decimal.Decimal) bool {
	for _, q := range w.QuickValues {
		if q.Equal(amount) {
			return true
		}
	}
	return false
}

// SettingsService is the only place loosely typed setting strings are parsed.
// Missing or malformed values fall back to defaults and never fail the caller.
type SettingsService struct {
	repo        *repository.SettingRepository
	withdrawals *repository.WithdrawalRepository
}

func NewSettingsService(repo *repository.SettingRepository, withdrawals *repository.WithdrawalRepository) *SettingsService {
	return &SettingsService{repo: repo, withdrawals: withdrawals}
}

func (s *SettingsService) Reward(ctx context.Context) (RewardSettings, error) {
	all, err := s.All(ctx)
	if err != nil {
		return RewardSettings{}, err
	}
	return RewardSettings{
		CheckinReward: parseNonNegativeInt(all, domain.SettingCheckinReward, domain.DefaultCheckinReward),
		InviteReward:  parseNonNegativeInt(all, domain.SettingInviteReward, domain.DefaultInviteReward),
	}, nil
}

func (s *SettingsService) Wheel(ctx context.Context) (WheelSettings, error) {
	rows, err := s.repo.GetRouletteAll(ctx)
	if err != nil {
		return WheelSettings{}, fmt.Errorf("load roulette settings: %w", err)
	}
	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.Key] = r.Value
	}
	return parseWheelSettings(values), nil
}

func parseWheelSettings(values map[string]string) WheelSettings {
	ws := WheelSettings{
		MaxDailySpins: parseNonNegativeInt(values, domain.SettingMaxDailySpins, domain.DefaultMaxDailySpins),
		PrizeValues:   append([]int64(nil), domain.DefaultPrizeValues...),
	}
	for key, raw := range values {
		if !strings.HasPrefix(key, domain.SettingPrizeKeyPrefix) {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(key, domain.SettingPrizeKeyPrefix))
		if err != nil || idx < 0 || idx >= len(ws.PrizeValues) {
			log.Warn().Str("key", key).Msg("[settings] ignoring prize slot outside the table")
			continue
		}
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || v < 0 {
			log.Warn().Str("key", key).Str("value", raw).Msg("[settings] ignoring malformed prize value")
			continue
		}
		ws.PrizeValues[idx] = v
	}
	return ws
}

func (s *SettingsService) Withdrawal(ctx context.Context) (WithdrawalSettings, error) {
	all, err := s.All(ctx)
	if err != nil {
		return WithdrawalSettings{}, err
	}
	ws := WithdrawalSettings{
		Min: parseDecimal(all, domain.SettingMinWithdrawal, decimal.NewFromInt(domain.DefaultMinWithdrawal)),
		Max: parseDecimal(all, domain.SettingMaxWithdrawal, decimal.NewFromInt(domain.DefaultMaxWithdrawal)),
	}
	quick, err := s.withdrawals.ListActiveQuickValues(ctx)
	if err != nil {
		return WithdrawalSettings{}, fmt.Errorf("load quick values: %w", err)
	}
	for _, q := range quick {
		ws.QuickValues = append(ws.QuickValues, q.ValueAmount)
	}
	return ws, nil
}

// All returns system_settings as a key/value map.
func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load system settings: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

// Update upserts one system setting.
func (s *SettingsService) Update(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrMissingField
	}
	return s.repo.Set(ctx, key, value)
}

func (s *SettingsService) QuickValues(ctx context.Context) ([]models.WithdrawalQuickValue, error) {
	return s.withdrawals.ListActiveQuickValues(ctx)
}

func parseNonNegativeInt(values map[string]string, key string, fallback int64) int64 {
	raw, ok := values[key]
	if !ok {
		return fallback
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v < 0 {
		log.Warn().Str("key", key).Str("value", raw).Int64("default", fallback).Msg("[settings] malformed value, using default")
		return fallback
	}
	return v
}

func parseDecimal(values map[string]string, key string, fallback decimal.Decimal) decimal.Decimal {
	raw, ok := values[key]
	if !ok {
		return fallback
	}
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || v.IsNegative() {
		log.Warn().Str("key", key).Str("value", raw).Msg("[settings] malformed value, using default")
		return fallback
	}
	return v
}
