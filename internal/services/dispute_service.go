// Package services – DisputeService
//
// This file implements the DisputeService, which lets a letter receiver
// report non-delivery once the minimum waiting period since the send
// timestamp has elapsed. Accepting a report marks the proof disputed and
// fans out two notifications (an operator alert and a sender notice). The
// fan-out is best effort: the proof update is authoritative, notification
// failures are logged, counted, and surfaced in the result rather than
// rolling anything back.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/lettermate/go-penpal-backend/internal/repo"
)

// DefaultDisputeMinDays is the waiting period before a dispute may open.
const DefaultDisputeMinDays = 14

// DisputeResult reports the outcome of a non-delivery report, including the
// per-item tally of the notification fan-out.
type DisputeResult struct {
	Message             string `json:"message"`
	NotificationsSent   int    `json:"notifications_sent"`
	NotificationsFailed int    `json:"notifications_failed"`
}

// DisputeService implements the non-delivery dispute use case.
type DisputeService struct {
	// DB is the database handle used for all dispute operations.
	DB *gorm.DB
	// MinDays is the whole-day waiting period since SentAt.
	MinDays int
	// AdminReviewURL is linked from the operator alert.
	AdminReviewURL string
	// Now returns the current time; replaceable in tests.
	Now func() time.Time
}

// NewDisputeService constructs a DisputeService with the configured waiting
// period (DefaultDisputeMinDays when minDays is negative) and review URL.
func NewDisputeService(db *gorm.DB, minDays int, adminReviewURL string) *DisputeService {
	if minDays < 0 {
		minDays = DefaultDisputeMinDays
	}
	return &DisputeService{
		DB:             db,
		MinDays:        minDays,
		AdminReviewURL: adminReviewURL,
		Now:            func() time.Time { return time.Now().UTC() },
	}
}

// Report files a non-delivery dispute for proofID on behalf of receiverID.
//
// Preconditions are checked in this fixed order:
//  1. proofID, receiverID, reason non-empty -> ErrMissingFields
//  2. proof exists                          -> ErrProofNotFound
//  3. receiverID matches the stored receiver -> ErrNotReceiver
//  4. proof not already disputed             -> ErrAlreadyDisputed
//  5. floor-days since SentAt >= MinDays     -> ErrDisputeTooEarly (wrapped
//     with the actual elapsed-day count)
//
// Day counting uses the whole-day floor of the elapsed duration: a report at
// exactly MinDays succeeds, and one at MinDays-1 days plus 23 hours fails.
func (s *DisputeService) Report(ctx context.Context, proofID, receiverID, reason string) (*DisputeResult, error) {
	if strings.TrimSpace(proofID) == "" ||
		strings.TrimSpace(receiverID) == "" ||
		strings.TrimSpace(reason) == "" {
		return nil, ErrMissingFields
	}

	p, err := repo.GetProof(ctx, s.DB, proofID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProofNotFound
		}
		return nil, err
	}
	if p.ReceiverID != receiverID {
		return nil, ErrNotReceiver
	}
	if p.IsDisputed {
		return nil, ErrAlreadyDisputed
	}

	now := s.Now()
	elapsedDays := int(now.Sub(p.SentAt) / (24 * time.Hour))
	if elapsedDays < s.MinDays {
		return nil, fmt.Errorf("%w: %d days elapsed, %d required", ErrDisputeTooEarly, elapsedDays, s.MinDays)
	}

	// Authoritative state change first; notifications are best effort.
	if err := repo.MarkProofDisputed(ctx, s.DB, proofID, reason, now); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Lost a race with another report on the same proof.
			return nil, ErrAlreadyDisputed
		}
		return nil, err
	}

	var sent, failed int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := repo.CreateAdminNotification(gctx, s.DB,
			"letter_dispute",
			"Letter non-delivery dispute",
			fmt.Sprintf("Proof %s disputed by receiver %s: %s", proofID, receiverID, reason),
			"high",
			s.AdminReviewURL,
		)
		if err != nil {
			atomic.AddInt64(&failed, 1)
			log.Error().Err(err).Str("proof_id", proofID).Msg("admin dispute notification failed")
			return nil
		}
		atomic.AddInt64(&sent, 1)
		return nil
	})
	g.Go(func() error {
		_, err := repo.CreateLetterNotification(gctx, s.DB,
			p.SenderID,
			"letter_disputed",
			"Your letter was reported missing",
			"Your pen pal reported that the letter has not arrived. Our team will review the delivery.",
		)
		if err != nil {
			atomic.AddInt64(&failed, 1)
			log.Error().Err(err).Str("proof_id", proofID).Str("sender_id", p.SenderID).Msg("sender dispute notification failed")
			return nil
		}
		atomic.AddInt64(&sent, 1)
		return nil
	})
	_ = g.Wait() // workers never return errors; failures are tallied

	disputesOpened.Inc()

	return &DisputeResult{
		Message:             "non-delivery dispute filed",
		NotificationsSent:   int(atomic.LoadInt64(&sent)),
		NotificationsFailed: int(atomic.LoadInt64(&failed)),
	}, nil
}
