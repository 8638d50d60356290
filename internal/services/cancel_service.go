// Package services – CancelService
//
// This file implements the CancelService, which files a mission cancellation
// request together with its linked pending penalty against the requester.
// The mission record itself is left untouched: an administrator resolves the
// request and only that confirmation marks the mission cancelled.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/lettermate/go-penpal-backend/internal/domain"
	"github.com/lettermate/go-penpal-backend/internal/repo"
)

// DefaultPenaltyPoints is the pending deduction used when none is configured.
const DefaultPenaltyPoints = 10

// CancelOutcome reports the records created by a cancellation request.
type CancelOutcome struct {
	CancelRequestID string `json:"cancel_request_id"`
	PenaltyID       string `json:"penalty_id"`
}

// CancelService implements the cancellation-request use case.
type CancelService struct {
	// DB is the database handle used for all cancellation operations.
	DB *gorm.DB
	// PenaltyPoints is the default pending deduction filed with each request.
	PenaltyPoints int
}

// NewCancelService constructs a CancelService, falling back to
// DefaultPenaltyPoints when points is negative.
func NewCancelService(db *gorm.DB, points int) *CancelService {
	if points < 0 {
		points = DefaultPenaltyPoints
	}
	return &CancelService{DB: db, PenaltyPoints: points}
}

// Request files a cancellation request for a mission on behalf of requesterID.
//
// Preconditions:
//   - missionID, requesterID, partnerID, reason non-empty -> ErrMissingFields
//   - mission exists                                      -> ErrMissionNotFound
//   - mission not already cancelled                       -> ErrAlreadyCancelled
//
// Effect: inserts a pending CancelRequest and a linked pending PenaltyRecord
// (severity medium, configured deduction) in one transaction, so a rejected
// precondition creates neither row.
func (s *CancelService) Request(ctx context.Context, missionID, requesterID, requesterName, partnerID, partnerName, reason string) (*CancelOutcome, error) {
	if strings.TrimSpace(missionID) == "" ||
		strings.TrimSpace(requesterID) == "" ||
		strings.TrimSpace(partnerID) == "" ||
		strings.TrimSpace(reason) == "" {
		return nil, ErrMissingFields
	}

	var out CancelOutcome
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := repo.GetMission(ctx, tx, missionID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMissionNotFound
			}
			return err
		}
		if m.Status == domain.MissionStatusCancelled {
			return ErrAlreadyCancelled
		}

		cr, err := repo.CreateCancelRequest(ctx, tx, missionID, requesterID, requesterName, partnerID, partnerName, reason)
		if err != nil {
			return err
		}
		pr, err := repo.CreatePenaltyRecord(ctx, tx, cr.ID, requesterID, domain.SeverityMedium, s.PenaltyPoints)
		if err != nil {
			return err
		}

		out = CancelOutcome{CancelRequestID: cr.ID, PenaltyID: pr.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cancelRequests.Inc()
	return &out, nil
}
