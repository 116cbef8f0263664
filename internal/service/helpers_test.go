package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"youngmoney/internal/database"
	"youngmoney/internal/models"
	"youngmoney/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	db    *gorm.DB
	clock *fakeClock

	users       *repository.UserRepository
	ledger      *repository.LedgerRepository
	spins       *repository.SpinRepository
	referrals   *repository.ReferralRepository
	withdrawals *repository.WithdrawalRepository
	settingRepo *repository.SettingRepository

	settings      *SettingsService
	notifications *NotificationService
	rewards       *RewardService
	wheel         *WheelService
	referral      *ReferralService
	withdrawal    *WithdrawalService
	postbacks     *PostbackService
	ranking       *RankingService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection: the in-memory database lives on it and transactions serialize.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	clk := newFakeClock(time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC))

	e := &testEnv{
		db:          db,
		clock:       clk,
		users:       repository.NewUserRepository(db),
		ledger:      repository.NewLedgerRepository(db),
		spins:       repository.NewSpinRepository(db),
		referrals:   repository.NewReferralRepository(db),
		withdrawals: repository.NewWithdrawalRepository(db),
		settingRepo: repository.NewSettingRepository(db),
	}
	e.settings = NewSettingsService(e.settingRepo, e.withdrawals)
	e.notifications = NewNotificationService(repository.NewNotificationRepository(db), clk.Now)
	e.rewards = NewRewardService(db, e.users, e.ledger, e.settings, clk.Now)
	e.wheel = NewWheelService(db, e.users, e.spins, e.ledger, e.settings, clk.Now)
	e.referral = NewReferralService(db, e.users, e.referrals, e.ledger, e.notifications, e.settings, clk.Now)
	e.withdrawal = NewWithdrawalService(db, e.users, e.withdrawals, e.ledger, e.notifications, e.settings, clk.Now)
	e.postbacks = NewPostbackService(repository.NewSessionRepository(db), repository.NewMonetagRepository(db), clk.Now)
	e.ranking = NewRankingService(e.users)
	return e
}

func (e *testEnv) createUser(t *testing.T, username string, points int64) *models.User {
	t.Helper()
	ctx := context.Background()
	u := &models.User{Username: username}
	require.NoError(t, e.users.CreateWithReferralCode(ctx, u))
	if points != 0 {
		require.NoError(t, e.users.UpdateFields(ctx, u.ID, map[string]interface{}{"points": points}))
		u.Points = points
	}
	return u
}

func (e *testEnv) reload(t *testing.T, id uint) *models.User {
	t.Helper()
	u, err := e.users.GetByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (e *testEnv) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
