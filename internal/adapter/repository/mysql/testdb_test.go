package mysql

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nft-lending-backend/internal/infrastructure/db"
)

// openTestDB runs the real schema migration against in-memory sqlite. The
// models stick to portable column types, so the mysql schema migrates as-is.
// The sqlite driver drops row-locking clauses, which keeps the ForUpdate
// paths runnable here.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}
