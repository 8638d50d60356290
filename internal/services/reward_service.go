// Package services – RewardService
//
// This file implements the RewardService, which issues the fixed point reward
// for a completed letter mission. It enforces the claim preconditions in a
// fixed order (presence, existence, completion, single issuance,
// participation) and performs the mission flag flip and the ledger credit in
// one database transaction, so a reward can never be issued twice even under
// concurrent claims. Service-level errors (e.g. ErrRewardAlreadyClaimed) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/lettermate/go-penpal-backend/internal/domain"
	"github.com/lettermate/go-penpal-backend/internal/repo"
)

// DefaultRewardPoints is used when no reward amount is configured.
const DefaultRewardPoints = 50

// ClaimResult describes a successful reward issuance.
type ClaimResult struct {
	// PointsAwarded is the amount credited to the claimant's ledger.
	PointsAwarded int `json:"points_awarded"`
	// NewTotal is the claimant's balance after the credit.
	NewTotal int `json:"new_total"`
	// TransactionID identifies the appended ledger history entry.
	TransactionID string `json:"transaction_id"`
}

// RewardService implements the reward-claim use case for completed missions.
type RewardService struct {
	// DB is the database handle used for all claim operations.
	DB *gorm.DB
	// Points is the fixed reward amount per mission.
	Points int
}

// NewRewardService constructs a RewardService with the configured reward
// amount, falling back to DefaultRewardPoints when points is not positive.
func NewRewardService(db *gorm.DB, points int) *RewardService {
	if points <= 0 {
		points = DefaultRewardPoints
	}
	return &RewardService{DB: db, Points: points}
}

// Claim issues the mission reward to userID.
//
// Preconditions are checked in this fixed order, each with its own error:
//  1. userID and missionID present       -> ErrMissingFields
//  2. mission exists                     -> ErrMissionNotFound
//  3. mission.IsCompleted                -> ErrMissionNotCompleted
//  4. !mission.RewardClaimed             -> ErrRewardAlreadyClaimed
//  5. userID is a mission participant    -> ErrNotParticipant
//
// Concurrency & atomicity:
//   - The whole operation runs inside a transaction, and the claimed-flag
//     flip is a conditional single-statement update, so two racing claims
//     cannot both succeed; the loser gets ErrRewardAlreadyClaimed even when
//     both passed the precondition read.
//
// On success the claimant's account is credited (created lazily on first
// use), exactly one history entry is appended, and an audit line is logged.
func (s *RewardService) Claim(ctx context.Context, userID, missionID string) (*ClaimResult, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(missionID) == "" {
		return nil, ErrMissingFields
	}

	var out ClaimResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := repo.GetMission(ctx, tx, missionID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMissionNotFound
			}
			return err
		}
		if !m.IsCompleted {
			return ErrMissionNotCompleted
		}
		if m.RewardClaimed {
			return ErrRewardAlreadyClaimed
		}
		if !m.IsParticipant(userID) {
			return ErrNotParticipant
		}

		now := time.Now().UTC()
		if err := repo.ClaimMissionReward(ctx, tx, missionID, now); err != nil {
			if errors.Is(err, repo.ErrAlreadyClaimed) {
				return ErrRewardAlreadyClaimed
			}
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMissionNotFound
			}
			return err
		}

		if err := repo.CreditAccount(ctx, tx, userID, s.Points); err != nil {
			return err
		}
		entry, err := repo.AppendTransaction(ctx, tx, userID, domain.TxTypeEarn, s.Points, "letter mission reward", missionID)
		if err != nil {
			return err
		}
		acc, err := repo.GetAccount(ctx, tx, userID)
		if err != nil {
			return err
		}

		out = ClaimResult{
			PointsAwarded: s.Points,
			NewTotal:      acc.TotalPoints,
			TransactionID: entry.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	pointsAwarded.Add(float64(out.PointsAwarded))

	// Audit trail: amount and recipient only, no further PII.
	log.Info().
		Str("user_id", userID).
		Str("mission_id", missionID).
		Int("amount", out.PointsAwarded).
		Int("new_total", out.NewTotal).
		Msg("mission reward issued")

	return &out, nil
}
