package psqlbuilder

import "github.com/Masterminds/squirrel"

// Поддерживаемые драйверы БД
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Builder построитель SQL запросов с плейсхолдерами нужного диалекта
type Builder struct {
	sb     squirrel.StatementBuilderType
	driver string
}

// New возвращает построитель для драйвера: $1 для Postgres, ? для SQLite
func New(driver string) Builder {
	var format squirrel.PlaceholderFormat = squirrel.Dollar
	if driver == DriverSQLite {
		format = squirrel.Question
	}
	return Builder{
		sb:     squirrel.StatementBuilder.PlaceholderFormat(format),
		driver: driver,
	}
}

// Postgres построитель для Postgres
func Postgres() Builder {
	return New(DriverPostgres)
}

// IsPostgres returns true if the builder targets Postgres
func (b Builder) IsPostgres() bool {
	return b.driver != DriverSQLite
}

// Select начинает SELECT с плейсхолдерами диалекта
func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

// Insert начинает INSERT с плейсхолдерами диалекта
func (b Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}

// Update начинает UPDATE с плейсхолдерами диалекта
func (b Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

// Delete начинает DELETE с плейсхолдерами диалекта
func (b Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sb.Delete(table)
}
