package service

import (
	"context"
	"testing"

	"youngmoney/internal/database"
	"youngmoney/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWheelSettings(t *testing.T) {
	ws := parseWheelSettings(map[string]string{
		domain.SettingMaxDailySpins: "oops",
		"prize_1":                   "300",
		"prize_8":                   "1",
		"prize_-1":                  "1",
		"prize_2":                   "-5",
		"prize_3":                   "abc",
	})
	assert.Equal(t, int64(domain.DefaultMaxDailySpins), ws.MaxDailySpins)
	assert.Equal(t, []int64{100, 300, 500, 750, 1000, 1500, 2000, 5000}, ws.PrizeValues)
	// The shared default table is never mutated.
	assert.Equal(t, int64(250), domain.DefaultPrizeValues[1])
}

func TestRewardSettingsFallback(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	rs, err := e.settings.Reward(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), rs.CheckinReward)
	assert.Equal(t, int64(1000), rs.InviteReward)

	require.NoError(t, e.settings.Update(ctx, domain.SettingInviteReward, "-1"))
	require.NoError(t, e.settings.Update(ctx, domain.SettingCheckinReward, " 42 "))
	rs, err = e.settings.Reward(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), rs.CheckinReward)
	assert.Equal(t, int64(1000), rs.InviteReward)
}

func TestWithdrawalSettingsFallback(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, e.settings.Update(ctx, domain.SettingMinWithdrawal, "ten"))
	require.NoError(t, e.settings.Update(ctx, domain.SettingMaxWithdrawal, "250.5"))

	ws, err := e.settings.Withdrawal(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10", ws.Min.String())
	assert.Equal(t, "250.5", ws.Max.String())
	assert.Empty(t, ws.QuickValues)
}

func TestSettingsUpdateUpserts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, e.settings.Update(ctx, "app_name", "YoungMoney"))
	require.NoError(t, e.settings.Update(ctx, "app_name", "YM"))
	all, err := e.settings.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "YM", all["app_name"])
	assert.Len(t, all, 1)

	assert.ErrorIs(t, e.settings.Update(ctx, " ", "x"), ErrMissingField)
}

func TestSeedDefaultsKeepsExistingValues(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, e.settings.Update(ctx, domain.SettingCheckinReward, "5"))

	require.NoError(t, e.settingRepo.SeedDefaults(ctx, database.DefaultSystemSettings(), database.DefaultRouletteSettings()))
	require.NoError(t, e.settingRepo.SeedDefaults(ctx, database.DefaultSystemSettings(), database.DefaultRouletteSettings()))

	rs, err := e.settings.Reward(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rs.CheckinReward)

	ws, err := e.settings.Wheel(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPrizeValues, ws.PrizeValues)
	assert.Equal(t, int64(domain.DefaultMaxDailySpins), ws.MaxDailySpins)
}
