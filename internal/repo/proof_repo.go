// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// LetterProof model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lettermate/go-penpal-backend/internal/domain"
)

// GetProof fetches a letter proof by ID. Returns ErrNotFound when absent.
func GetProof(ctx context.Context, db *gorm.DB, id string) (*domain.LetterProof, error) {
	var p domain.LetterProof
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkProofDisputed transitions a proof to the disputed state, recording the
// receiver's reason and the dispute time. The update is conditional on the
// proof not already being disputed so repeated reports stay idempotent at
// the storage level.
func MarkProofDisputed(ctx context.Context, db *gorm.DB, id, reason string, now time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.LetterProof{}).
		Where("id = ? AND is_disputed = ?", id, false).
		Updates(map[string]any{
			"is_disputed":    true,
			"dispute_reason": reason,
			"disputed_at":    now,
			"status":         domain.ProofStatusDisputed,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
