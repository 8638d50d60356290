// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// CancelRequest and PenaltyRecord models.
//
// Both inserts are plain appends; resolving a request (approve/reject) and
// confirming a penalty are separate admin actions.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lettermate/go-penpal-backend/internal/domain"
)

// CreateCancelRequest inserts a pending cancellation request for a mission.
func CreateCancelRequest(ctx context.Context, db *gorm.DB, missionID, requesterID, requesterName, partnerID, partnerName, reason string) (*domain.CancelRequest, error) {
	now := time.Now().UTC()
	cr := &domain.CancelRequest{
		ID:            uuid.NewString(),
		MissionID:     missionID,
		RequesterID:   requesterID,
		RequesterName: requesterName,
		PartnerID:     partnerID,
		PartnerName:   partnerName,
		Reason:        reason,
		Status:        domain.RequestStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.WithContext(ctx).Create(cr).Error; err != nil {
		return nil, err
	}
	return cr, nil
}

// CreatePenaltyRecord inserts a pending penalty linked to a cancel request.
func CreatePenaltyRecord(ctx context.Context, db *gorm.DB, cancelRequestID, userID, severity string, pointDeduction int) (*domain.PenaltyRecord, error) {
	now := time.Now().UTC()
	pr := &domain.PenaltyRecord{
		ID:              uuid.NewString(),
		CancelRequestID: cancelRequestID,
		UserID:          userID,
		Severity:        severity,
		PointDeduction:  pointDeduction,
		Status:          domain.PenaltyStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.WithContext(ctx).Create(pr).Error; err != nil {
		return nil, err
	}
	return pr, nil
}
