package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"youngmoney/internal/domain"
	"youngmoney/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckinGrantsDefaultReward(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, "ana", 0)

	res, err := e.rewards.Checkin(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.Reward)
	assert.Equal(t, int64(100), res.NewBalance)

	got := e.reload(t, u.ID)
	assert.Equal(t, int64(100), got.Points)
	assert.Equal(t, int64(100), got.DailyPoints)

	history, err := e.rewards.History(context.Background(), u.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ReasonCheckin, history[0].Reason)
	assert.Equal(t, domain.DescCheckin, history[0].Description)
	assert.Equal(t, int64(100), history[0].Points)
}

func TestCheckinUsesConfiguredReward(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.settingRepo.Set(context.Background(), domain.SettingCheckinReward, "250"))
	u := e.createUser(t, "ana", 10)

	res, err := e.rewards.Checkin(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), res.Reward)
	assert.Equal(t, int64(260), res.NewBalance)
}

func TestCheckinMalformedRewardFallsBack(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.settingRepo.Set(context.Background(), domain.SettingCheckinReward, "lots"))
	u := e.createUser(t, "ana", 0)

	res, err := e.rewards.Checkin(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(domain.DefaultCheckinReward), res.Reward)
}

func TestCheckinTwiceSameDay(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, "ana", 0)
	ctx := context.Background()

	_, err := e.rewards.Checkin(ctx, u.ID)
	require.NoError(t, err)

	e.clock.Advance(9 * time.Hour) // 23:30 same day
	_, err = e.rewards.Checkin(ctx, u.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	assert.Equal(t, int64(100), e.reload(t, u.ID).Points)
	assert.Equal(t, int64(1), e.count(t, &models.PointsHistory{}, "user_id = ?", u.ID))
}

func TestCheckinNextDayAllowed(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, "ana", 0)
	ctx := context.Background()

	_, err := e.rewards.Checkin(ctx, u.ID)
	require.NoError(t, err)

	e.clock.Set(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
	res, err := e.rewards.Checkin(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), res.NewBalance)
}

func TestCheckinConcurrentGrantsOnce(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, "ana", 0)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.rewards.Checkin(context.Background(), u.ID)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, int64(100), e.reload(t, u.ID).Points)
	assert.Equal(t, int64(1), e.count(t, &models.PointsHistory{}, "user_id = ? AND reason = ?", u.ID, domain.ReasonCheckin))
}

func TestCheckinDedupeKeyRejectsDuplicateRow(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, "ana", 0)
	key := checkinDedupeKey(u.ID, e.clock.Now())

	// A row written under the same key (e.g. by a racing instance) blocks the grant.
	require.NoError(t, e.ledger.Append(context.Background(), &models.PointsHistory{
		UserID: u.ID, Points: 100, Reason: domain.ReasonAdmin, DedupeKey: &key, CreatedAt: e.clock.Now(),
	}))

	_, err := e.rewards.Checkin(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.Equal(t, int64(0), e.reload(t, u.ID).Points)
}

func TestCheckinUnknownUser(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.rewards.Checkin(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAddPoints(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, "ana", 0)
	ctx := context.Background()

	require.NoError(t, e.rewards.AddPoints(ctx, u.ID, 40, ""))
	got := e.reload(t, u.ID)
	assert.Equal(t, int64(40), got.Points)
	assert.Equal(t, int64(40), got.DailyPoints)

	history, err := e.rewards.History(ctx, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.DescAdminDefault, history[0].Description)

	assert.ErrorIs(t, e.rewards.AddPoints(ctx, u.ID, 0, ""), ErrInvalidAmount)
	assert.ErrorIs(t, e.rewards.AddPoints(ctx, 0, 10, ""), ErrMissingField)
	assert.ErrorIs(t, e.rewards.AddPoints(ctx, 999, 10, ""), ErrUserNotFound)
}

func TestTransactionsDeriveType(t *testing.T) {
	e := newTestEnv(t)
	u := e.createUser(t, "ana", 0)
	ctx := context.Background()

	_, err := e.rewards.Checkin(ctx, u.ID)
	require.NoError(t, err)
	e.clock.Advance(time.Minute)
	require.NoError(t, e.ledger.Append(ctx, &models.PointsHistory{
		UserID: u.ID, Points: -30, Reason: domain.ReasonWithdrawal, Description: "x", CreatedAt: e.clock.Now(),
	}))

	txs, err := e.rewards.Transactions(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, domain.TxTypeDebit, txs[0].Type)
	assert.Equal(t, domain.TxTypeCredit, txs[1].Type)
	debitAt, err := time.Parse(time.RFC3339, txs[0].CreatedAt)
	require.NoError(t, err)
	assert.True(t, debitAt.Equal(e.clock.Now()), txs[0].CreatedAt)

	_, sum, err := e.rewards.Balance(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(70), sum)
}
