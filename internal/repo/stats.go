// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used primarily
// for conditional responses (e.g., ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lettermate/go-penpal-backend/internal/domain"
)

// LedgerStats returns aggregate metadata for a user's ledger history: the
// total number of transaction rows and the greatest CreatedAt among them.
//
// When the user has no transactions, the returned count is 0 and maxCreatedAt
// is nil. Because history is append-only, (count, maxCreatedAt) changes if
// and only if the history changed, which makes the pair a cheap ETag input.
//
// Return values:
//   - count:        total transactions for userID
//   - maxCreatedAt: pointer to the greatest CreatedAt, or nil if no rows
//   - err:          database error, if any
func LedgerStats(ctx context.Context, db *gorm.DB, userID string) (count int64, maxCreatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.PointTransaction{}).Where("user_id = ?", userID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
