// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the point
// ledger: the per-user PointAccount balance row and its append-only
// PointTransaction history.
//
// The ledger is write-once: transaction rows are inserted and never updated
// or deleted. Balance mutations go through CreditAccount, which creates the
// account lazily on first use and otherwise applies an in-database increment
// so concurrent credits do not lose updates.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lettermate/go-penpal-backend/internal/domain"
)

// GetAccount fetches the ledger account for userID, or ErrNotFound when the
// user has no ledger yet.
func GetAccount(ctx context.Context, db *gorm.DB, userID string) (*domain.PointAccount, error) {
	var acc domain.PointAccount
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

// CreditAccount adds amount to the user's total and earned points, creating
// the account row lazily when absent. The increment runs as a single UPDATE
// expression, never read-modify-write in process.
func CreditAccount(ctx context.Context, db *gorm.DB, userID string, amount int) error {
	if amount <= 0 {
		return errors.New("credit amount must be positive")
	}

	res := db.WithContext(ctx).
		Model(&domain.PointAccount{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"total_points":  gorm.Expr("total_points + ?", amount),
			"earned_points": gorm.Expr("earned_points + ?", amount),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// First transaction for this user: create the account.
	now := time.Now().UTC()
	acc := &domain.PointAccount{
		UserID:       userID,
		TotalPoints:  amount,
		EarnedPoints: amount,
		SpentPoints:  0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return db.WithContext(ctx).Create(acc).Error
}

// AppendTransaction inserts one ledger history entry with a fresh UUID.
func AppendTransaction(ctx context.Context, db *gorm.DB, userID, txType string, amount int, reason, referenceID string) (*domain.PointTransaction, error) {
	tx := &domain.PointTransaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Reason:      reason,
		ReferenceID: referenceID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(tx).Error; err != nil {
		return nil, err
	}
	return tx, nil
}

// GetTransaction fetches one ledger entry by id, or ErrNotFound.
func GetTransaction(ctx context.Context, db *gorm.DB, id string) (*domain.PointTransaction, error) {
	var tx domain.PointTransaction
	if err := db.WithContext(ctx).Where("id = ?", id).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

// CountTransactions returns the total number of history entries for a user.
// A raw COUNT is used so a missing table surfaces as an error.
func CountTransactions(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM point_transactions WHERE user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

// ListTransactionsPage returns a paginated slice of the user's history,
// ordered deterministically (CreatedAt ASC, ID ASC) to preserve append order.
func ListTransactionsPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.PointTransaction, error) {
	var out []domain.PointTransaction
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
