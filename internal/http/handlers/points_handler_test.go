package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lettermate/go-penpal-backend/internal/domain"
	"github.com/lettermate/go-penpal-backend/internal/repo"
	"github.com/lettermate/go-penpal-backend/internal/services"
)

// newHandlerDB opens an isolated in-memory database for handler tests that
// exercise the real storage path (ledger reads, idempotency replays).
func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:hdl_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newDBHandlers(db *gorm.DB) *Handlers {
	return New(
		services.NewRewardService(db, 50),
		services.NewCancelService(db, 10),
		services.NewDisputeService(db, 14, "/admin/letters/disputes"),
		services.NewReminderService(db, 0),
	)
}

func TestGetPoints_EmptyLedgerIsZeroValued(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newDBHandlers(newHandlerDB(t))

	r := gin.New()
	r.GET("/users/:id/points", h.GetPoints)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/u-new/points", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp PointsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.TotalPoints != 0 || resp.EarnedPoints != 0 || resp.SpentPoints != 0 {
		t.Fatalf("expected zero-valued balance, got %+v", resp)
	}
	if resp.History == nil || len(resp.History) != 0 {
		t.Fatalf("expected empty history slice, got %+v", resp.History)
	}
	if w.Header().Get("ETag") == "" {
		t.Fatalf("expected ETag header on ledger reads")
	}
}

func TestGetPoints_BalanceHistoryAndPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.CreditAccount(ctx, db, "u1", 50); err != nil {
			t.Fatalf("credit: %v", err)
		}
		ref := fmt.Sprintf("ms-%d", i)
		if _, err := repo.AppendTransaction(ctx, db, "u1", "earn", 50, "letter mission reward", ref); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	h := newDBHandlers(db)
	r := gin.New()
	r.GET("/users/:id/points", h.GetPoints)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/u1/points?page=1&page_size=2", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp PointsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.TotalPoints != 150 || resp.EarnedPoints != 150 {
		t.Fatalf("unexpected balance: %+v", resp)
	}
	if len(resp.History) != 2 {
		t.Fatalf("page size not applied: %d entries", len(resp.History))
	}
	p := resp.Pagination
	if p.Page != 1 || p.PageSize != 2 || p.Total != 3 || p.TotalPages != 2 || !p.HasNext {
		t.Fatalf("unexpected pagination: %+v", p)
	}
}

func TestGetPoints_ETagNotModified(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)
	ctx := context.Background()

	if err := repo.CreditAccount(ctx, db, "u1", 50); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if _, err := repo.AppendTransaction(ctx, db, "u1", "earn", 50, "letter mission reward", "ms-1"); err != nil {
		t.Fatalf("append: %v", err)
	}

	h := newDBHandlers(db)
	r := gin.New()
	r.GET("/users/:id/points", h.GetPoints)

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/users/u1/points", nil))
	etag := w1.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag on first read")
	}

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/u1/points", nil)
	req.Header.Set("If-None-Match", etag)
	r.ServeHTTP(w2, req)

	if w2.Code != http.StatusNotModified {
		t.Fatalf("expected 304 with matching ETag, got %d", w2.Code)
	}
}

func TestClaimReward_IdempotencyReplay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)

	m := &domain.LetterMission{
		ID: "ms-1", MatchID: "mt-1",
		User1ID: "u1", User2ID: "u2",
		IsCompleted: true,
		Status:      domain.MissionStatusActive,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed mission: %v", err)
	}

	h := newDBHandlers(db)
	r := gin.New()
	r.POST("/missions/:id/reward", h.ClaimReward)

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/missions/ms-1/reward", nil)
		req.Header.Set("X-User-ID", "u1")
		req.Header.Set("Idempotency-Key", "7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab")
		r.ServeHTTP(w, req)
		return w
	}

	w1 := do()
	if w1.Code != http.StatusOK {
		t.Fatalf("first claim: expected 200, got %d (%s)", w1.Code, w1.Body.String())
	}
	var first ClaimRewardResponse
	if err := json.Unmarshal(w1.Body.Bytes(), &first); err != nil {
		t.Fatalf("json: %v", err)
	}

	// Same key: replayed result, not a 409.
	w2 := do()
	if w2.Code != http.StatusOK {
		t.Fatalf("replay: expected 200, got %d (%s)", w2.Code, w2.Body.String())
	}
	if w2.Header().Get("Idempotency-Replayed") != "true" {
		t.Fatalf("expected Idempotency-Replayed header on second call")
	}
	var second ClaimRewardResponse
	if err := json.Unmarshal(w2.Body.Bytes(), &second); err != nil {
		t.Fatalf("json: %v", err)
	}
	if second.TransactionID != first.TransactionID || second.NewTotal != first.NewTotal {
		t.Fatalf("replay diverged: first %+v second %+v", first, second)
	}

	// A different key after the claim still conflicts.
	w3 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/missions/ms-1/reward", nil)
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("Idempotency-Key", "00000000-0000-0000-0000-000000000001")
	r.ServeHTTP(w3, req)
	if w3.Code != http.StatusConflict {
		t.Fatalf("fresh key after claim: expected 409, got %d", w3.Code)
	}
}
