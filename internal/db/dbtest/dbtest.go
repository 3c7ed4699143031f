// Package dbtest provides migrated in-memory databases for tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"household_ledger/internal/db"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"gorm.io/gorm"
)

var seq atomic.Int64

// New returns a migrated SQLite database private to t with foreign keys enforced.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, seq.Add(1))

	log, _ := logtest.NewNullLogger()
	gdb, err := gorm.Open(sqlite.Open(dsn), db.GormConfig(log))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection keeps the in-memory database alive and serializes access.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// Logger returns a logger whose entries are captured by the returned hook.
func Logger() (logrus.FieldLogger, *logtest.Hook) {
	return logtest.NewNullLogger()
}
