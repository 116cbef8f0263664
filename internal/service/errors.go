package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Validation errors.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrMissingPayoutInfo = errors.New("pix type and key are required")
	ErrMissingInviteCode = errors.New("invite code is required")
	ErrMissingField      = errors.New("required field is missing")
	ErrWeakPassword      = errors.New("password is too short")
)

// Not-found errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidCode  = errors.New("invalid invite code")
)

// Business-rule errors. None of them leave a partial write behind.
var (
	ErrAlreadyCheckedIn    = errors.New("already checked in today")
	ErrQuotaExhausted      = errors.New("daily spin quota exhausted")
	ErrAlreadyUsedCode     = errors.New("invite code already used")
	ErrSelfReferral        = errors.New("cannot use own invite code")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBelowMinimum        = errors.New("amount below minimum withdrawal")
	ErrAboveMaximum        = errors.New("amount above maximum withdrawal")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidGoogleToken  = errors.New("google token does not match email")
	ErrEmailTaken          = errors.New("email already in use")
)

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func notFoundAs(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
