package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lettermate/go-penpal-backend/internal/domain"
)

func TestGetMission_NotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := GetMission(context.Background(), db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClaimMissionReward_FlipsOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	m := &domain.LetterMission{
		ID: "ms1", MatchID: "mt1",
		User1ID: "u1", User2ID: "u2",
		IsCompleted: true, Status: domain.MissionStatusActive,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed mission: %v", err)
	}

	now := time.Now().UTC()
	if err := ClaimMissionReward(ctx, db, "ms1", now); err != nil {
		t.Fatalf("first claim: %v", err)
	}

	got, err := GetMission(ctx, db, "ms1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.RewardClaimed || got.RewardClaimedAt == nil {
		t.Fatalf("claim flag not set: %+v", got)
	}

	// Second flip must report the conflict, not silently succeed.
	if err := ClaimMissionReward(ctx, db, "ms1", now); !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}
}

func TestClaimMissionReward_MissingMission(t *testing.T) {
	db := newTestDB(t)
	err := ClaimMissionReward(context.Background(), db, "nope", time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkMissionStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	m := &domain.LetterMission{
		ID: "ms2", MatchID: "mt1", User1ID: "u1", User2ID: "u2",
		Status: domain.MissionStatusActive,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := MarkMissionStatus(ctx, db, "ms2", domain.MissionStatusCancelled); err != nil {
		t.Fatalf("mark: %v", err)
	}
	got, _ := GetMission(ctx, db, "ms2")
	if got.Status != domain.MissionStatusCancelled {
		t.Fatalf("status = %q; want cancelled", got.Status)
	}

	if err := MarkMissionStatus(ctx, db, "missing", domain.MissionStatusCancelled); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing mission, got %v", err)
	}
}

func TestGetMatch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := GetMatch(ctx, db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	p := &domain.PenpalMatch{
		ID: "mt1", User1ID: "u1", User1Name: "Mina",
		User2ID: "u2", User2Name: "Leo", Status: "active",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := GetMatch(ctx, db, "mt1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.User1Name != "Mina" || got.User2Name != "Leo" {
		t.Fatalf("unexpected match: %+v", got)
	}
}
