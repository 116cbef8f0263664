package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"youngmoney/internal/models"
	"youngmoney/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	db    *gorm.DB
	users *repository.UserRepository
}

func NewUserService(db *gorm.DB, users *repository.UserRepository) *UserService {
	return &UserService{db: db, users: users}
}

func (s *UserService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ProfileUpdate holds the editable profile fields. Empty values are left untouched.
type ProfileUpdate struct {
	Username string
	Email    string
	Password string
}

// UpdateProfile applies every field of in or none of them.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) error {
	fields := map[string]interface{}{}
	if in.Password != "" {
		hash, err := hashNewPassword(in.Password)
		if err != nil {
			return err
		}
		fields["password_hash"] = hash
	}
	if v := strings.TrimSpace(in.Username); v != "" {
		fields["username"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(in.Email)); v != "" {
		fields["email"] = v
	}
	if len(fields) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		if _, err := users.GetByIDForUpdate(ctx, userID); err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		if err := users.UpdateFields(ctx, userID, fields); err != nil {
			if isDuplicateKey(err) {
				return ErrEmailTaken
			}
			return fmt.Errorf("update profile: %w", err)
		}
		return nil
	})
}
