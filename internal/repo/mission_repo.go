// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// LetterMission and PenpalMatch models.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a row is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - GetMission(ctx, db, id) -> *domain.LetterMission, error
//     Fetches a mission by ID, or ErrNotFound if missing.
//
//   - ClaimMissionReward(ctx, db, id, now) -> error
//     Conditionally flips reward_claimed false→true; ErrAlreadyClaimed when
//     the flag was already set, ErrNotFound when the row does not exist.
//
//   - MarkMissionStatus(ctx, db, id, status) -> error
//     Unconditionally sets the mission lifecycle status.
//
//   - GetMatch(ctx, db, id) -> *domain.PenpalMatch, error
//     Fetches a match by ID, or ErrNotFound if missing.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lettermate/go-penpal-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
//
// It aliases gorm.ErrRecordNotFound so callers can use errors.Is either way.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrAlreadyClaimed is returned by ClaimMissionReward when the mission's
// reward flag was already set by an earlier (possibly concurrent) claim.
var ErrAlreadyClaimed = errors.New("reward already claimed")

// GetMission fetches a mission by ID. Returns ErrNotFound when absent.
func GetMission(ctx context.Context, db *gorm.DB, id string) (*domain.LetterMission, error) {
	var m domain.LetterMission
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ClaimMissionReward flips reward_claimed and stamps the claim time, but
// only when the flag is still unset. The conditional WHERE makes the
// transition at-most-once under concurrent callers: the update is a single
// statement, so two racing claims cannot both see RowsAffected == 1.
func ClaimMissionReward(ctx context.Context, db *gorm.DB, id string, now time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.LetterMission{}).
		Where("id = ? AND reward_claimed = ?", id, false).
		Updates(map[string]any{
			"reward_claimed":    true,
			"reward_claimed_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the row is gone or the flag was already set; disambiguate.
		var m domain.LetterMission
		if err := db.WithContext(ctx).Select("id").Where("id = ?", id).First(&m).Error; err != nil {
			return ErrNotFound
		}
		return ErrAlreadyClaimed
	}
	return nil
}

// MarkMissionStatus sets the lifecycle status of a mission.
// Returns ErrNotFound when the mission does not exist.
func MarkMissionStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.LetterMission{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetMatch fetches a penpal match by ID. Returns ErrNotFound when absent.
func GetMatch(ctx context.Context, db *gorm.DB, id string) (*domain.PenpalMatch, error) {
	var p domain.PenpalMatch
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
