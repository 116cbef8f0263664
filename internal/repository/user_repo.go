package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"youngmoney/internal/domain"
	"youngmoney/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInsufficientPoints = errors.New("insufficient points")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// GenerateReferralCode returns a random code over [A-Z0-9].
func GenerateReferralCode() (string, error) {
	alphabet := big.NewInt(int64(len(domain.ReferralCodeAlphabet)))
	b := make([]byte, domain.ReferralCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabet)
		if err != nil {
			return "", err
		}
		b[i] = domain.ReferralCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}

// CreateWithReferralCode assigns a fresh referral code and inserts u, retrying on code collision.
func (r *UserRepository) CreateWithReferralCode(ctx context.Context, u *models.User) error {
	for i := 0; i < 10; i++ {
		code, err := GenerateReferralCode()
		if err != nil {
			return err
		}
		u.ReferralCode = code
		err = r.Create(ctx, u)
		if err == nil {
			return nil
		}
		conflict, cerr := r.isReferralCodeConflict(ctx, err, code)
		if cerr != nil {
			return cerr
		}
		if !conflict {
			return err
		}
		// Collision: retry with new code
		u.ID = 0
	}
	return fmt.Errorf("failed to generate a unique referral code after retries")
}

// isReferralCodeConflict tells a referral code collision apart from other unique
// violations. Translated errors no longer name the column, so the code is looked up.
func (r *UserRepository) isReferralCodeConflict(ctx context.Context, err error, code string) (bool, error) {
	if strings.Contains(err.Error(), "referral_code") {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("referral_code = ?", code).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDForUpdate loads the user row with a write lock held until the surrounding transaction ends.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByDeviceID(ctx context.Context, deviceID string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// UpdateFields applies a partial update (username/email/device_id).
func (r *UserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

// CreditPoints adds to points and daily_points.
func (r *UserRepository) CreditPoints(ctx context.Context, id uint, amount int64) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"points":       gorm.Expr("points + ?", amount),
		"daily_points": gorm.Expr("daily_points + ?", amount),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreditEarned adds to points and total_earned (referral rewards).
func (r *UserRepository) CreditEarned(ctx context.Context, id uint, amount int64) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"points":       gorm.Expr("points + ?", amount),
		"total_earned": gorm.Expr("total_earned + ?", amount),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DebitPoints subtracts points only while the balance covers it, so points never go negative.
func (r *UserRepository) DebitPoints(ctx context.Context, id uint, amount int64, withdrawn decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND points >= ?", id, amount).
		Updates(map[string]interface{}{
			"points":          gorm.Expr("points - ?", amount),
			"total_withdrawn": gorm.Expr("total_withdrawn + ?", withdrawn),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientPoints
	}
	return nil
}

// MarkInviteUsed flips has_used_invite_code false->true. Returns false if it was already true.
func (r *UserRepository) MarkInviteUsed(ctx context.Context, id uint, code string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND has_used_invite_code = ?", id, false).
		Updates(map[string]interface{}{
			"has_used_invite_code": true,
			"referred_by":          code,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ListByDailyPoints returns the daily ranking, highest first.
func (r *UserRepository) ListByDailyPoints(ctx context.Context, limit int) ([]models.User, error) {
	var list []models.User
	err := r.db.WithContext(ctx).Order("daily_points DESC").Order("id ASC").Limit(limit).Find(&list).Error
	return list, err
}

// CountAboveDailyPoints counts users with strictly more daily points.
func (r *UserRepository) CountAboveDailyPoints(ctx context.Context, dailyPoints int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("daily_points > ?", dailyPoints).Count(&count).Error
	return count, err
}

// ResetDailyPoints zeroes daily_points for everyone and returns how many rows changed.
func (r *UserRepository) ResetDailyPoints(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("daily_points <> ?", 0).UpdateColumn("daily_points", 0)
	return res.RowsAffected, res.Error
}
