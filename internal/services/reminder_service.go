// Package services – ReminderService
//
// This file implements the ReminderService, which broadcasts address
// reminders to the participants of a match who have not yet submitted a
// mailing address. Inserts run concurrently and are best effort: per-item
// outcomes are tallied and returned instead of failing the whole batch.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/lettermate/go-penpal-backend/internal/repo"
)

// DefaultReminderTTL bounds how long an address reminder stays visible.
const DefaultReminderTTL = 24 * time.Hour

// Participant is one side of a match as submitted by the caller, carrying
// whether that user has already provided a mailing address.
type Participant struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Submitted bool   `json:"submitted"`
}

// ReminderResult reports the outcome of a reminder broadcast.
type ReminderResult struct {
	NotificationCount int       `json:"notification_count"`
	FailedCount       int       `json:"failed_count"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// ReminderService implements the address-reminder broadcast use case.
type ReminderService struct {
	// DB is the database handle used for notification inserts.
	DB *gorm.DB
	// TTL is how long each reminder remains valid.
	TTL time.Duration
	// Now returns the current time; replaceable in tests.
	Now func() time.Time

	caser cases.Caser
}

// NewReminderService constructs a ReminderService, falling back to
// DefaultReminderTTL when ttl is not positive.
func NewReminderService(db *gorm.DB, ttl time.Duration) *ReminderService {
	if ttl <= 0 {
		ttl = DefaultReminderTTL
	}
	return &ReminderService{
		DB:    db,
		TTL:   ttl,
		Now:   func() time.Time { return time.Now().UTC() },
		caser: cases.Title(language.English),
	}
}

// Send creates one address reminder per participant who has not submitted an
// address. All reminders share a single expiry of now + TTL. Inserts run
// concurrently; a failed insert is logged and counted but does not abort the
// remaining ones.
//
// Returns ErrMissingFields when matchID is blank or no participants are given.
func (s *ReminderService) Send(ctx context.Context, matchID string, participants []Participant) (*ReminderResult, error) {
	if strings.TrimSpace(matchID) == "" || len(participants) == 0 {
		return nil, ErrMissingFields
	}

	expiresAt := s.Now().Add(s.TTL)

	var sent, failed int64
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range participants {
		if p.Submitted || strings.TrimSpace(p.UserID) == "" {
			continue
		}
		p := p
		g.Go(func() error {
			partner := s.partnerLabel(participants, p.UserID)
			title := "Mailing address needed"
			body := fmt.Sprintf("Please add your mailing address so %s can send you a letter.", partner)

			if _, err := repo.CreateAddressNotification(gctx, s.DB, matchID, p.UserID, title, body, expiresAt); err != nil {
				atomic.AddInt64(&failed, 1)
				log.Error().Err(err).Str("match_id", matchID).Str("user_id", p.UserID).Msg("address reminder insert failed")
				return nil
			}
			atomic.AddInt64(&sent, 1)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are tallied

	return &ReminderResult{
		NotificationCount: int(atomic.LoadInt64(&sent)),
		FailedCount:       int(atomic.LoadInt64(&failed)),
		ExpiresAt:         expiresAt,
	}, nil
}

// partnerLabel names the other participant for the reminder text, with a
// generic fallback when the partner is unknown or unnamed.
func (s *ReminderService) partnerLabel(participants []Participant, userID string) string {
	for _, other := range participants {
		if other.UserID == userID {
			continue
		}
		if name := strings.TrimSpace(other.Name); name != "" {
			return s.caser.String(name)
		}
	}
	return "your pen pal"
}
