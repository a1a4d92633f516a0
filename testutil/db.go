// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/busfleet/internal/config"
	"github.com/nurpe/busfleet/internal/db"
)

// NewDB opens a migrated in-memory SQLite database private to the calling
// test. It is closed automatically when the test finishes.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DB: config.DBConfig{
			Driver:      config.DBDriverSQLite,
			DSN:         fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
			AutoMigrate: true,
		},
	}

	database, err := db.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("testutil.NewDB: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("testutil.NewDB: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return database
}
