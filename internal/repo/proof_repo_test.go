package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lettermate/go-penpal-backend/internal/domain"
)

func TestMarkProofDisputed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	sent := time.Now().UTC().Add(-20 * 24 * time.Hour)
	p := &domain.LetterProof{
		ID: "pf1", MissionID: "ms1",
		SenderID: "u1", ReceiverID: "u2",
		SentAt: sent, Status: domain.ProofStatusSent,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed proof: %v", err)
	}

	now := time.Now().UTC()
	if err := MarkProofDisputed(ctx, db, "pf1", "never arrived", now); err != nil {
		t.Fatalf("mark disputed: %v", err)
	}

	got, err := GetProof(ctx, db, "pf1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.IsDisputed || got.Status != domain.ProofStatusDisputed || got.DisputedAt == nil {
		t.Fatalf("dispute fields not set: %+v", got)
	}
	if got.DisputeReason != "never arrived" {
		t.Fatalf("reason = %q", got.DisputeReason)
	}

	// Second mark finds no undisputed row.
	if err := MarkProofDisputed(ctx, db, "pf1", "again", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on re-dispute, got %v", err)
	}
}

func TestGetProof_NotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := GetProof(context.Background(), db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNotificationInserts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateAdminNotification(ctx, db, "letter_dispute", "Dispute filed", "proof pf1", "high", "/admin/letters/disputes"); err != nil {
		t.Fatalf("admin notification: %v", err)
	}
	if _, err := CreateLetterNotification(ctx, db, "u1", "letter_disputed", "Letter reported missing", "your pen pal reported non-delivery"); err != nil {
		t.Fatalf("letter notification: %v", err)
	}
	exp := time.Now().UTC().Add(24 * time.Hour)
	n, err := CreateAddressNotification(ctx, db, "mt1", "u1", "Address needed", "please add your address", exp)
	if err != nil {
		t.Fatalf("address notification: %v", err)
	}
	if !n.ExpiresAt.Equal(exp) {
		t.Fatalf("expiry = %v; want %v", n.ExpiresAt, exp)
	}
}
