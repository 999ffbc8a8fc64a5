package schema

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ResourceBooking/pkg/dbmetrics"
)

//go:embed sqlite.sql
var sqliteDDL string

// ApplySQLite создаёт таблицы SQLite, если их ещё нет.
// Postgres мигрируется отдельно файлами из migrations/.
func ApplySQLite(ctx context.Context, db dbmetrics.DBExecutor) error {
	for _, stmt := range statements(sqliteDDL) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: failed to apply %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// statements делит DDL на отдельные запросы по ";"
func statements(ddl string) []string {
	parts := strings.Split(ddl, ";")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			result = append(result, s)
		}
	}
	return result
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
