package repo

import (
	"path/filepath"
	"testing"
)

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "nope", "app.db"))
	if err == nil {
		t.Fatalf("expected error when parent directory is missing")
	}
}

func TestOpenSQLite_AndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	for _, tbl := range []string{
		"point_accounts", "point_transactions", "letter_missions",
		"penpal_matches", "cancel_requests", "penalty_records",
		"letter_proofs", "admin_notifications", "letter_notifications",
		"address_notifications", "idempotency",
	} {
		if !db.Migrator().HasTable(tbl) {
			t.Fatalf("expected table %q to exist", tbl)
		}
	}
}
