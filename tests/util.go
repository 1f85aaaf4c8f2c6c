package testutil

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iwneis/neishelper/core"
	"github.com/iwneis/neishelper/core/catalog"
	"github.com/iwneis/neishelper/storage/database"
)

// NewTestConfig returns a config pointing at a private in-memory sqlite database.
func NewTestConfig() *core.Config {
	return &core.Config{
		TestMode: true,
		AppName:  "NEIS Helper",
		Env:      "TEST",
		Server: core.ServerConfig{
			Host:            "localhost",
			Address:         ":0",
			ShutdownTimeout: time.Second,
			AllowOrigins:    []string{"*"},
		},
		Database: core.DatabaseConfig{
			Engine: database.EngineSQLite,
			Path:   ":memory:",
		},
		Checklist: core.ChecklistConfig{
			DefaultUserID: "default",
			StorageKey:    "neis-checklist-state",
			SaveTimeout:   time.Second,
		},
	}
}

// PrepareDB opens and migrates a fresh in-memory sqlite database, closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(NewTestConfig())
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("database.Migrate() failed: %v", err)
	}
	return db
}

// LoadCatalog loads the embedded catalog.
func LoadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() failed: %v", err)
	}
	return c
}

// NopLogger discards everything.
type NopLogger struct{}

var _ core.Logger = NopLogger{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}
