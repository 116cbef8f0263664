package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"youngmoney/internal/auth"
	"youngmoney/internal/models"
	"youngmoney/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type GoogleLoginInput struct {
	Email       string
	Name        string
	GoogleID    string
	DeviceID    string
	AccessToken string
}

type LoginResult struct {
	User    *models.User
	Token   string
	Created bool
}

type AuthService struct {
	authn    *auth.Authenticator
	userRepo *repository.UserRepository
	google   GoogleVerifier
}

// NewAuthService wires login flows. google may be nil, in which case Google
// logins are trusted as sent by the app.
func NewAuthService(authn *auth.Authenticator, userRepo *repository.UserRepository, google GoogleVerifier) *AuthService {
	return &AuthService{authn: authn, userRepo: userRepo, google: google}
}

func generatedUsername() string {
	return fmt.Sprintf("Usuário %d", rand.Intn(10000))
}

func (s *AuthService) issue(u *models.User, created bool) (*LoginResult, error) {
	deviceID := ""
	if u.DeviceID != nil {
		deviceID = *u.DeviceID
	}
	token, err := s.authn.Issue(u.ID, u.EmailValue(), deviceID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{User: u, Token: token, Created: created}, nil
}

// DeviceLogin fetches the user bound to deviceID or creates one.
func (s *AuthService) DeviceLogin(ctx context.Context, deviceID string) (*LoginResult, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, ErrMissingField
	}
	u, err := s.userRepo.GetByDeviceID(ctx, deviceID)
	if err == nil {
		return s.issue(u, false)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	u = &models.User{DeviceID: &deviceID, Username: generatedUsername()}
	if err := s.userRepo.CreateWithReferralCode(ctx, u); err != nil {
		if !isDuplicateKey(err) {
			return nil, fmt.Errorf("create user: %w", err)
		}
		// Lost a race with a concurrent login for the same device.
		if u, err = s.userRepo.GetByDeviceID(ctx, deviceID); err != nil {
			return nil, err
		}
		return s.issue(u, false)
	}
	log.Info().Uint("user_id", u.ID).Str("device_id", deviceID).Msg("[auth] device user created")
	return s.issue(u, true)
}

// GoogleLogin fetches the user by email or creates one, attaching the device id when missing.
func (s *AuthService) GoogleLogin(ctx context.Context, in GoogleLoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, ErrMissingField
	}
	if s.google != nil && in.AccessToken != "" {
		p, err := s.google.Verify(ctx, in.AccessToken)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(p.Email, email) {
			return nil, ErrInvalidGoogleToken
		}
	}
	deviceID := strings.TrimSpace(in.DeviceID)

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if deviceID != "" && u.DeviceID == nil {
			if err := s.userRepo.UpdateFields(ctx, u.ID, map[string]interface{}{"device_id": deviceID}); err != nil {
				log.Warn().Err(err).Uint("user_id", u.ID).Msg("[auth] could not attach device id")
			} else {
				u.DeviceID = &deviceID
			}
		}
		return s.issue(u, false)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	username := strings.TrimSpace(in.Name)
	if username == "" {
		username = strings.Split(email, "@")[0]
	}
	u = &models.User{Email: &email, Username: username}
	if deviceID != "" {
		if _, err := s.userRepo.GetByDeviceID(ctx, deviceID); errors.Is(err, gorm.ErrRecordNotFound) {
			u.DeviceID = &deviceID
		}
	}
	if err := s.userRepo.CreateWithReferralCode(ctx, u); err != nil {
		if !isDuplicateKey(err) {
			return nil, fmt.Errorf("create user: %w", err)
		}
		// Lost a race with a concurrent login for the same email.
		if u, err = s.userRepo.GetByEmail(ctx, email); err != nil {
			return nil, err
		}
		return s.issue(u, false)
	}
	log.Info().Uint("user_id", u.ID).Str("email", email).Msg("[auth] google user created")
	return s.issue(u, true)
}

// EmailLogin authenticates accounts that have a password set.
func (s *AuthService) EmailLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrMissingField
	}
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u, false)
}

// SetPassword sets or replaces the user's password.
func (s *AuthService) SetPassword(ctx context.Context, userID uint, password string) error {
	hash, err := hashNewPassword(password)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"password_hash": hash})
}

const minPasswordLength = 6

func hashNewPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}
