// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides insert helpers for the three
// notification collections: admin alerts, user-facing letter notifications,
// and time-boxed address reminders.
//
// Notifications are fire-and-forget appends; read/ack flows live elsewhere.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lettermate/go-penpal-backend/internal/domain"
)

// CreateAdminNotification inserts an operator-facing alert.
func CreateAdminNotification(ctx context.Context, db *gorm.DB, typ, title, body, priority, reviewURL string) (*domain.AdminNotification, error) {
	n := &domain.AdminNotification{
		ID:        uuid.NewString(),
		Type:      typ,
		Title:     title,
		Body:      body,
		Priority:  priority,
		ReviewURL: reviewURL,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// CreateLetterNotification inserts an unread notification for a user.
func CreateLetterNotification(ctx context.Context, db *gorm.DB, userID, typ, title, body string) (*domain.LetterNotification, error) {
	n := &domain.LetterNotification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Body:      body,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// CreateAddressNotification inserts an address reminder that expires at the
// given time.
func CreateAddressNotification(ctx context.Context, db *gorm.DB, matchID, userID, title, body string, expiresAt time.Time) (*domain.AddressNotification, error) {
	n := &domain.AddressNotification{
		ID:        uuid.NewString(),
		MatchID:   matchID,
		UserID:    userID,
		Title:     title,
		Body:      body,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}
