package service

import (
	"context"
	"errors"
	"fmt"

	"youngmoney/internal/repository"

	"gorm.io/gorm"
)

type RankingEntry struct {
	Position    int    `json:"position"`
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	DailyPoints int64  `json:"daily_points"`
	TotalPoints int64  `json:"total_points"`
}

type RankingService struct {
	users *repository.UserRepository
}

func NewRankingService(users *repository.UserRepository) *RankingService {
	return &RankingService{users: users}
}

// List returns the daily ranking; limit <= 0 means 100.
func (s *RankingService) List(ctx context.Context, limit int) ([]RankingEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	users, err := s.users.ListByDailyPoints(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list ranking: %w", err)
	}
	out := make([]RankingEntry, 0, len(users))
	for i, u := range users {
		out = append(out, RankingEntry{
			Position:    i + 1,
			UserID:      u.ID,
			Username:    u.Username,
			DailyPoints: u.DailyPoints,
			TotalPoints: u.Points,
		})
	}
	return out, nil
}

// Position is 1 + the number of users with strictly more daily points, so ties share a rank.
func (s *RankingService) Position(ctx context.Context, userID uint) (*RankingEntry, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	above, err := s.users.CountAboveDailyPoints(ctx, u.DailyPoints)
	if err != nil {
		return nil, fmt.Errorf("count ranking: %w", err)
	}
	return &RankingEntry{
		Position:    int(above) + 1,
		UserID:      u.ID,
		Username:    u.Username,
		DailyPoints: u.DailyPoints,
		TotalPoints: u.Points,
	}, nil
}

// ResetDaily zeroes every user's daily points.
func (s *RankingService) ResetDaily(ctx context.Context) (int64, error) {
	return s.users.ResetDailyPoints(ctx)
}
