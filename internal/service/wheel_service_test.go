package service

import (
	"context"
	"testing"
	"time"

	"youngmoney/internal/domain"
	"youngmoney/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreetingBoundaries(t *testing.T) {
	cases := map[int]string{
		0:  domain.GreetingNight,
		4:  domain.GreetingNight,
		5:  domain.GreetingMorning,
		11: domain.GreetingMorning,
		12: domain.GreetingAfternoon,
		17: domain.GreetingAfternoon,
		18: domain.GreetingNight,
		23: domain.GreetingNight,
	}
	for hour, want := range cases {
		assert.Equal(t, want, Greeting(hour), "hour %d", hour)
	}
}

func TestWheelStatusDefaults(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, "ana", 0)

	st, err := e.wheel.Status(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), st.MaxDailySpins)
	assert.Equal(t, int64(10), st.SpinsRemaining)
	assert.Equal(t, int64(0), st.SpinsToday)
	assert.Equal(t, domain.DefaultPrizeValues, st.PrizeValues)
	assert.Equal(t, domain.GreetingAfternoon, st.Greeting)
}

func TestSpinCreditsPrize(t *testing.T) {
	e := newTestEnv(t)
	e.wheel.pick = func(int) int { return 3 }
	u := e.createUser(t, "ana", 5)

	res, err := e.wheel.Spin(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, res.PrizeIndex)
	assert.Equal(t, int64(750), res.PrizeValue)
	assert.Equal(t, int64(755), res.NewBalance)
	assert.Equal(t, int64(9), res.SpinsRemaining)
	assert.Equal(t, int64(1), res.SpinsToday)

	got := e.reload(t, u.ID)
	assert.Equal(t, int64(755), got.Points)
	assert.Equal(t, int64(750), got.DailyPoints)
	assert.Equal(t, int64(1), e.count(t, &models.SpinRecord{}, "user_id = ?", u.ID))

	history, err := e.rewards.History(context.Background(), u.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Roleta da Sorte - Ganhou 750 pontos", history[0].Description)
}

func TestSpinQuotaExhausted(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, e.settingRepo.SetRoulette(ctx, domain.SettingMaxDailySpins, "3"))
	u := e.createUser(t, "ana", 0)

	for i := 0; i < 3; i++ {
		_, err := e.wheel.Spin(ctx, u.ID)
		require.NoError(t, err)
	}
	before := e.reload(t, u.ID).Points

	res, err := e.wheel.Spin(ctx, u.ID)
	require.ErrorIs(t, err, ErrQuotaExhausted)
	require.NotNil(t, res)
	assert.Equal(t, int64(0), res.SpinsRemaining)
	assert.Equal(t, int64(3), res.SpinsToday)
	assert.Equal(t, int64(3), res.MaxDailySpins)

	assert.Equal(t, before, e.reload(t, u.ID).Points)
	assert.Equal(t, int64(3), e.count(t, &models.SpinRecord{}, "user_id = ?", u.ID))
}

func TestSpinQuotaResetsNextDay(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, e.settingRepo.SetRoulette(ctx, domain.SettingMaxDailySpins, "1"))
	u := e.createUser(t, "ana", 0)

	_, err := e.wheel.Spin(ctx, u.ID)
	require.NoError(t, err)
	_, err = e.wheel.Spin(ctx, u.ID)
	require.ErrorIs(t, err, ErrQuotaExhausted)

	e.clock.Set(time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC))
	res, err := e.wheel.Spin(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GreetingMorning, res.Greeting)
}

func TestSpinPrizeOverrides(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, e.settingRepo.SetRoulette(ctx, "prize_0", "7"))
	require.NoError(t, e.settingRepo.SetRoulette(ctx, "prize_42", "9999"))
	require.NoError(t, e.settingRepo.SetRoulette(ctx, "prize_x", "9999"))
	e.wheel.pick = func(int) int { return 0 }
	u := e.createUser(t, "ana", 0)

	st, err := e.wheel.Status(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, st.PrizeValues, 8)
	assert.Equal(t, int64(7), st.PrizeValues[0])
	assert.Equal(t, int64(5000), st.PrizeValues[7])

	res, err := e.wheel.Spin(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.PrizeValue)
}

func TestSpinIsUniform(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}
	e := newTestEnv(t)
	ctx := context.Background()
	const spins = 4000
	require.NoError(t, e.settingRepo.SetRoulette(ctx, domain.SettingMaxDailySpins, "100000"))
	u := e.createUser(t, "ana", 0)

	allowed := map[int64]bool{}
	for _, v := range domain.DefaultPrizeValues {
		allowed[v] = true
	}
	counts := make([]int, len(domain.DefaultPrizeValues))
	var total int64
	for i := 0; i < spins; i++ {
		res, err := e.wheel.Spin(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, allowed[res.PrizeValue])
		require.Equal(t, domain.DefaultPrizeValues[res.PrizeIndex], res.PrizeValue)
		counts[res.PrizeIndex]++
		total += res.PrizeValue
	}

	// Expected 500 per slot, standard deviation about 21.
	for i, c := range counts {
		assert.InDelta(t, spins/8, c, 150, "slot %d", i)
	}
	assert.Equal(t, total, e.reload(t, u.ID).Points)
}
