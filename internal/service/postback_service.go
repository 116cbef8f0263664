package service

import (
	"context"
	"fmt"
	"strings"

	"youngmoney/internal/domain"
	"youngmoney/internal/models"
	"youngmoney/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Postback is one ad-network callback as received.
type Postback struct {
	EventType string
	SubID     string
	SubID2    string
	Revenue   string
}

type MonetagStats struct {
	Impressions  int64
	Clicks       int64
	TotalRevenue decimal.Decimal
}

// PostbackService keeps the ad-view session registry and attributes postbacks to users.
type PostbackService struct {
	sessions *repository.SessionRepository
	events   *repository.MonetagRepository
	clock    Clock
}

func NewPostbackService(sessions *repository.SessionRepository, events *repository.MonetagRepository, clock Clock) *PostbackService {
	if clock == nil {
		clock = systemClock
	}
	return &PostbackService{sessions: sessions, events: events, clock: clock}
}

// CreateSession registers an ad view; it can attribute postbacks for SessionTTL.
func (s *PostbackService) CreateSession(ctx context.Context, userID, userEmail string) (*models.ActiveSession, error) {
	userID = strings.TrimSpace(userID)
	userEmail = strings.TrimSpace(userEmail)
	if userID == "" || userEmail == "" {
		return nil, ErrMissingField
	}
	now := s.clock()
	sess := &models.ActiveSession{
		SessionID: uuid.New().String(),
		UserID:    userID,
		UserEmail: userEmail,
		ExpiresAt: now.Add(domain.SessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	log.Info().Str("user_email", userEmail).Time("expires_at", sess.ExpiresAt).Msg("[session] created")
	return sess, nil
}

func isPlaceholder(subID, subID2 string) bool {
	return subID == domain.PlaceholderSubID || subID2 == domain.PlaceholderSubID2
}

// ResolvePostback records the event and reports whether it was attributed.
// Placeholder or missing identifiers fall back to the most recent active session
// system-wide; with no active session the event is dropped.
func (s *PostbackService) ResolvePostback(ctx context.Context, pb Postback) (bool, error) {
	userID := strings.TrimSpace(pb.SubID)
	userEmail := strings.TrimSpace(pb.SubID2)

	if isPlaceholder(userID, userEmail) || userID == "" || userEmail == "" {
		sess, err := s.sessions.LatestActive(ctx, s.clock())
		if err != nil {
			return false, fmt.Errorf("lookup session: %w", err)
		}
		if sess == nil {
			log.Info().Str("sub_id", pb.SubID).Str("sub_id2", pb.SubID2).Msg("[postback] no active session, dropped")
			return false, nil
		}
		userID, userEmail = sess.UserID, sess.UserEmail
	}

	eventType := strings.TrimSpace(pb.EventType)
	if eventType == "" {
		eventType = domain.EventUnknown
	}
	ev := &models.MonetagEvent{
		UserID:    userID,
		UserEmail: userEmail,
		EventType: eventType,
		Revenue:   ParseRevenue(pb.Revenue),
		CreatedAt: s.clock(),
	}
	if err := s.events.CreateEvent(ctx, ev); err != nil {
		return false, fmt.Errorf("record event: %w", err)
	}
	log.Info().Str("event_type", eventType).Str("user_email", userEmail).Str("revenue", ev.Revenue.StringFixed(6)).Msg("[postback] recorded")
	return true, nil
}

// ParseRevenue rounds to 6 fractional digits; absent or unparseable input is zero.
func ParseRevenue(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(6)
}

// CleanupExpiredSessions deletes sessions whose expiry has passed.
func (s *PostbackService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.clock())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	if n > 0 {
		log.Debug().Int64("deleted", n).Msg("[cleanup] expired sessions removed")
	}
	return n, nil
}

func (s *PostbackService) Stats(ctx context.Context, email string) (*MonetagStats, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrMissingField
	}
	events, err := s.events.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	stats := &MonetagStats{TotalRevenue: decimal.Zero}
	for _, e := range events {
		switch e.EventType {
		case domain.EventImpression:
			stats.Impressions++
		case domain.EventClick:
			stats.Clicks++
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(e.Revenue)
	}
	stats.TotalRevenue = stats.TotalRevenue.Round(6)
	return stats, nil
}

// ActiveSessions counts sessions that can still attribute a postback.
func (s *PostbackService) ActiveSessions(ctx context.Context) (int64, error) {
	return s.sessions.CountActive(ctx, s.clock())
}
