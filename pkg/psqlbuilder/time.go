package psqlbuilder

import (
	"fmt"
	"time"
)

// sqliteTimeLayout формат хранения моментов в SQLite.
// Строки этого формата в UTC сравниваются лексикографически в правильном порядке.
const sqliteTimeLayout = "2006-01-02T15:04:05Z"

// TimeArg возвращает аргумент запроса для момента времени.
// Postgres получает time.Time (TIMESTAMPTZ), SQLite - строку в UTC.
func (b Builder) TimeArg(t time.Time) interface{} {
	if b.IsPostgres() {
		return t.UTC()
	}
	return t.UTC().Format(sqliteTimeLayout)
}

// Time сканирует момент времени из TIMESTAMPTZ или TEXT колонки
type Time struct {
	Time time.Time
}

// Scan implements sql.Scanner
func (t *Time) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("psqlbuilder: cannot scan %T into Time", src)
	}
}

func (t *Time) parse(s string) error {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05Z07:00", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("psqlbuilder: cannot parse time %q", s)
}
