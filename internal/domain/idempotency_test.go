package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestIdempotency_Migration_UniqueKey(t *testing.T) {
	db := newTestDB(t)

	if err := db.AutoMigrate(&Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if !db.Migrator().HasIndex(&Idempotency{}, "ux_user_mission_key") {
		t.Fatalf("expected unique index ux_user_mission_key on idempotency")
	}

	now := time.Now().UTC()
	rec := &Idempotency{
		ID: "i1", UserID: "u1", MissionID: "ms1", Key: "k1",
		TransactionID: "tx1", Status: 200,
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Same (user, mission, key) tuple must violate the unique index.
	dup := &Idempotency{
		ID: "i2", UserID: "u1", MissionID: "ms1", Key: "k1",
		TransactionID: "tx2", Status: 200,
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected unique violation for duplicate tuple")
	}
}
