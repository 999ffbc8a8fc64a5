// Package storagetest поднимает временную SQLite базу для тестов репозиториев и use case.
package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/schema"
	"github.com/m04kA/SMC-ResourceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ResourceBooking/pkg/psqlbuilder"
)

// NewSQLite открывает базу во временной директории теста и применяет схему.
// Соединение одно, как и в продакшен-конфигурации SQLite.
func NewSQLite(tb testing.TB) (*dbmetrics.DB, psqlbuilder.Builder) {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "booking.db")
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	if err := schema.ApplySQLite(context.Background(), wrapped); err != nil {
		tb.Fatalf("failed to apply schema: %v", err)
	}

	return wrapped, psqlbuilder.New(psqlbuilder.DriverSQLite)
}
