package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ResourceBooking/pkg/psqlbuilder"
)

// Комнаты и серверы лежат в разных таблицах, у серверов нет вместимости
const (
	tableRooms   = "rooms"
	tableServers = "servers"
)

// Repository репозиторий комнат и серверов
type Repository struct {
	db  dbmetrics.DBExecutor
	qb  psqlbuilder.Builder
	now func() time.Time
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db dbmetrics.DBExecutor, qb psqlbuilder.Builder) *Repository {
	return &Repository{
		db:  db,
		qb:  qb,
		now: time.Now,
	}
}

func tableFor(t domain.ResourceType) (string, error) {
	switch t {
	case domain.ResourceRoom:
		return tableRooms, nil
	case domain.ResourceServer:
		return tableServers, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
}

func columnsFor(t domain.ResourceType) []string {
	if t == domain.ResourceRoom {
		return []string{"id", "name", "capacity", "description", "created_at", "updated_at"}
	}
	return []string{"id", "name", "NULL AS capacity", "description", "created_at", "updated_at"}
}

// Create сохраняет новый ресурс
func (r *Repository) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	table, err := tableFor(res.Type)
	if err != nil {
		return nil, err
	}

	now := domain.NormalizeInstant(r.now())

	columns := []string{"name", "description", "created_at", "updated_at"}
	values := []interface{}{res.Name, res.Description, r.qb.TimeArg(now), r.qb.TimeArg(now)}
	if res.Type == domain.ResourceRoom {
		columns = append(columns, "capacity")
		values = append(values, res.Capacity)
	}

	query, args, err := r.qb.Insert(table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.CreatedAt = now
	res.UpdatedAt = now

	return res, nil
}

// GetByRef получает ресурс по ссылке
func (r *Repository) GetByRef(ctx context.Context, ref domain.ResourceRef) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	table, err := tableFor(ref.Type)
	if err != nil {
		return nil, err
	}

	query, args, err := r.qb.Select(columnsFor(ref.Type)...).
		From(table).
		Where(squirrel.Eq{"id": ref.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRef - build select query: %w", ErrBuildQuery, err)
	}

	res, err := scanResource(executor.QueryRowContext(ctx, query, args...), ref.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRef - scan resource: %w", ErrScanRow, err)
	}

	return res, nil
}

// Exists проверяет, что ресурс существует
func (r *Repository) Exists(ctx context.Context, ref domain.ResourceRef) (bool, error) {
	_, err := r.GetByRef(ctx, ref)
	if errors.Is(err, ErrResourceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List возвращает ресурсы одного типа по имени
func (r *Repository) List(ctx context.Context, t domain.ResourceType) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	table, err := tableFor(t)
	if err != nil {
		return nil, err
	}

	query, args, err := r.qb.Select(columnsFor(t)...).
		From(table).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows, t)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return resources, nil
}

// Update обновляет имя, вместимость и описание ресурса
func (r *Repository) Update(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	table, err := tableFor(res.Type)
	if err != nil {
		return nil, err
	}

	updateBuilder := r.qb.Update(table).
		Set("name", res.Name).
		Set("description", res.Description).
		Set("updated_at", r.qb.TimeArg(domain.NormalizeInstant(r.now()))).
		Where(squirrel.Eq{"id": res.ID})
	if res.Type == domain.ResourceRoom {
		updateBuilder = updateBuilder.Set("capacity", res.Capacity)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	if err := r.execAffectingOne(ctx, executor, "Update", query, args); err != nil {
		return nil, err
	}

	return r.GetByRef(ctx, res.Ref())
}

// Delete удаляет ресурс. Бронирования ресурса удаляются каскадно.
func (r *Repository) Delete(ctx context.Context, ref domain.ResourceRef) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	table, err := tableFor(ref.Type)
	if err != nil {
		return err
	}

	query, args, err := r.qb.Delete(table).
		Where(squirrel.Eq{"id": ref.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor dbmetrics.DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResource(row rowScanner, t domain.ResourceType) (*domain.Resource, error) {
	var (
		res                  domain.Resource
		capacity             sql.NullInt64
		description          sql.NullString
		createdAt, updatedAt psqlbuilder.Time
	)

	if err := row.Scan(&res.ID, &res.Name, &capacity, &description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	res.Type = t
	if capacity.Valid {
		c := int(capacity.Int64)
		res.Capacity = &c
	}
	if description.Valid {
		d := description.String
		res.Description = &d
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}
