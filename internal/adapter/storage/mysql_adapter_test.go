package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/storefront?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	return db
}

func TestMySQLSetThenGet(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	db.ExecContext(ctx, `DELETE FROM cart_snapshots WHERE storage_key = 'test:cart'`)

	if _, found, err := adapter.Get(ctx, "test:cart"); err != nil || found {
		t.Fatalf("expected missing key, got found=%v err=%v", found, err)
	}

	if err := adapter.Set(ctx, "test:cart", `[{"id":1,"amount":1}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := adapter.Set(ctx, "test:cart", `[{"id":1,"amount":3}]`); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	value, found, err := adapter.Get(ctx, "test:cart")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found || value != `[{"id":1,"amount":3}]` {
		t.Errorf("expected latest snapshot, got %q (found=%v)", value, found)
	}

	// Upsert keeps a single row per key
	var count int
	db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cart_snapshots WHERE storage_key = 'test:cart'`).Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}

	db.ExecContext(ctx, `DELETE FROM cart_snapshots WHERE storage_key = 'test:cart'`)
}
