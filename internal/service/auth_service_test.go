package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"youngmoney/config"
	"youngmoney/internal/auth"
	"youngmoney/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	profile *GoogleProfile
	err     error
}

func (s stubVerifier) Verify(context.Context, string) (*GoogleProfile, error) {
	return s.profile, s.err
}

func newTestAuth(t *testing.T, e *testEnv, v GoogleVerifier) (*AuthService, *auth.Authenticator) {
	t.Helper()
	authn := auth.NewAuthenticator(&config.JWTConfig{Secret: "s", Expiry: time.Hour})
	return NewAuthService(authn, e.users, v), authn
}

func TestDeviceLoginCreatesThenFetches(t *testing.T) {
	e := newTestEnv(t)
	svc, authn := newTestAuth(t, e, nil)
	ctx := context.Background()

	first, err := svc.DeviceLogin(ctx, "dev-1")
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Regexp(t, `^[A-Z0-9]{8}$`, first.User.ReferralCode)
	assert.Regexp(t, `^Usuário \d+$`, first.User.Username)
	assert.Equal(t, int64(0), first.User.Points)

	claims, err := authn.Verify(first.Token)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, claims.UserID)
	assert.Equal(t, "dev-1", claims.DeviceID)

	again, err := svc.DeviceLogin(ctx, "dev-1")
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, first.User.ID, again.User.ID)

	_, err = svc.DeviceLogin(ctx, "  ")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestGoogleLoginCreatesAndAttachesDevice(t *testing.T) {
	e := newTestEnv(t)
	svc, _ := newTestAuth(t, e, nil)
	ctx := context.Background()

	created, err := svc.GoogleLogin(ctx, GoogleLoginInput{Email: "Ana@X.com"})
	require.NoError(t, err)
	assert.True(t, created.Created)
	assert.Equal(t, "ana@x.com", created.User.EmailValue())
	assert.Equal(t, "ana", created.User.Username)
	assert.Nil(t, created.User.DeviceID)

	again, err := svc.GoogleLogin(ctx, GoogleLoginInput{Email: "ana@x.com", DeviceID: "dev-9"})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, created.User.ID, again.User.ID)

	got := e.reload(t, created.User.ID)
	require.NotNil(t, got.DeviceID)
	assert.Equal(t, "dev-9", *got.DeviceID)

	_, err = svc.GoogleLogin(ctx, GoogleLoginInput{})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestGoogleLoginVerifiesToken(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	mismatch, _ := newTestAuth(t, e, stubVerifier{profile: &GoogleProfile{Email: "other@x.com"}})
	_, err := mismatch.GoogleLogin(ctx, GoogleLoginInput{Email: "ana@x.com", AccessToken: "tok"})
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)

	failing, _ := newTestAuth(t, e, stubVerifier{err: errors.New("boom")})
	_, err = failing.GoogleLogin(ctx, GoogleLoginInput{Email: "ana@x.com", AccessToken: "tok"})
	assert.Error(t, err)

	ok, _ := newTestAuth(t, e, stubVerifier{profile: &GoogleProfile{Email: "ANA@x.com"}})
	res, err := ok.GoogleLogin(ctx, GoogleLoginInput{Email: "ana@x.com", Name: "Ana Souza", AccessToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", res.User.Username)
}

func TestEmailLogin(t *testing.T) {
	e := newTestEnv(t)
	svc, _ := newTestAuth(t, e, nil)
	ctx := context.Background()

	res, err := svc.GoogleLogin(ctx, GoogleLoginInput{Email: "ana@x.com"})
	require.NoError(t, err)

	_, err = svc.EmailLogin(ctx, "ana@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.SetPassword(ctx, res.User.ID, "secret1"))
	login, err := svc.EmailLogin(ctx, "ANA@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	_, err = svc.EmailLogin(ctx, "ana@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.EmailLogin(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGoogleLoginConcurrentFirstLogin(t *testing.T) {
	e := newTestEnv(t)
	svc, _ := newTestAuth(t, e, nil)

	const workers = 6
	var wg sync.WaitGroup
	results := make([]*LoginResult, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.GoogleLogin(context.Background(), GoogleLoginInput{Email: "race@x.com"})
		}(i)
	}
	wg.Wait()

	for i := range errs {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].User.ID, results[i].User.ID)
	}
	assert.Equal(t, int64(1), e.count(t, &models.User{}, "email = ?", "race@x.com"))
}

func TestSetPasswordTooShort(t *testing.T) {
	e := newTestEnv(t)
	svc, _ := newTestAuth(t, e, nil)
	u := e.createUser(t, "ana", 0)

	assert.ErrorIs(t, svc.SetPassword(context.Background(), u.ID, "abc"), ErrWeakPassword)
	assert.Empty(t, e.reload(t, u.ID).PasswordHash)
}
