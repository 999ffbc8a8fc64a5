package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ResourceBooking/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"room_id",
	"server_id",
	"purpose",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db  DBExecutor
	qb  psqlbuilder.Builder
	now func() time.Time
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, qb psqlbuilder.Builder) *Repository {
	return &Repository{
		db:  db,
		qb:  qb,
		now: time.Now,
	}
}

// resourceColumn возвращает колонку внешнего ключа для типа ресурса
func resourceColumn(t domain.ResourceType) (string, error) {
	switch t {
	case domain.ResourceRoom:
		return "room_id", nil
	case domain.ResourceServer:
		return "server_id", nil
	default:
		return "", fmt.Errorf("%w: unknown resource type %q", ErrInvalidResource, t)
	}
}

// resourceArgs раскладывает ссылку на ресурс в пару room_id/server_id, одна из которых NULL
func resourceArgs(ref domain.ResourceRef) (interface{}, interface{}, error) {
	if err := ref.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidResource, err)
	}
	if ref.Type == domain.ResourceRoom {
		return ref.ID, nil, nil
	}
	return nil, ref.ID, nil
}

// LockResource берёт транзакционную advisory-блокировку ресурса в Postgres.
// Блокировка снимается вместе с транзакцией. Вне транзакции и на SQLite ничего не делает:
// SQLite и так пропускает только одну пишущую транзакцию.
func (r *Repository) LockResource(ctx context.Context, ref domain.ResourceRef) error {
	if !r.qb.IsPostgres() || !dbmetrics.IsInTransaction(ctx) {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", advisoryKey(ref)); err != nil {
		return fmt.Errorf("%w: LockResource - %s: %w", ErrLock, ref, err)
	}
	return nil
}

// advisoryKey стабильный 64-битный ключ ресурса для pg_advisory_xact_lock
func advisoryKey(ref domain.ResourceRef) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(ref.LockKey()))
	return int64(h.Sum64())
}

// FindActiveForResource возвращает бронирования ресурса, которые ещё занимают его:
// статус не rejected и end_time > now. excludingID исключает редактируемое бронирование.
// В транзакции на Postgres строки блокируются (FOR UPDATE).
func (r *Repository) FindActiveForResource(
	ctx context.Context,
	ref domain.ResourceRef,
	excludingID *int64,
	now time.Time,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := resourceColumn(ref.Type)
	if err != nil {
		return nil, err
	}

	selectBuilder := r.qb.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{column: ref.ID}).
		Where(squirrel.NotEq{"status": string(domain.StatusRejected)}).
		Where(squirrel.Gt{"end_time": r.qb.TimeArg(now)}).
		OrderBy("start_time ASC")

	if excludingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludingID})
	}

	if r.qb.IsPostgres() && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveForResource - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveForResource - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if !booking.Status.IsStored() {
		return nil, fmt.Errorf("%w: Create - %q", ErrInvalidStatus, booking.Status)
	}
	roomID, serverID, err := resourceArgs(booking.Resource)
	if err != nil {
		return nil, err
	}

	now := domain.NormalizeInstant(r.now())

	query, args, err := r.qb.Insert("bookings").
		Columns(
			"user_id",
			"room_id",
			"server_id",
			"purpose",
			"start_time",
			"end_time",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			booking.UserID,
			roomID,
			serverID,
			booking.Purpose,
			r.qb.TimeArg(booking.StartTime),
			r.qb.TimeArg(booking.EndTime),
			string(booking.Status),
			r.qb.TimeArg(now),
			r.qb.TimeArg(now),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = now
	booking.UpdatedAt = now

	return booking, nil
}

// GetByID получает бронирование по ID.
// В транзакции на Postgres строка блокируется до конца транзакции.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if r.qb.IsPostgres() && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List возвращает бронирования по фильтру, новые сверху
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(bookingColumns...).From("bookings")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}

	if filter.ResourceType != nil {
		column, err := resourceColumn(*filter.ResourceType)
		if err != nil {
			return nil, err
		}
		if filter.ResourceID != nil {
			selectBuilder = selectBuilder.Where(squirrel.Eq{column: *filter.ResourceID})
		} else {
			selectBuilder = selectBuilder.Where(squirrel.NotEq{column: nil})
		}
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	// Фильтрация по времени окончания
	if filter.EndedBefore != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"end_time": r.qb.TimeArg(*filter.EndedBefore)})
	}
	if filter.EndsAfter != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": r.qb.TimeArg(*filter.EndsAfter)})
	}
	if filter.EndFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_time": r.qb.TimeArg(*filter.EndFrom)})
	}
	if filter.EndTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"end_time": r.qb.TimeArg(*filter.EndTo)})
	}

	query, args, err := selectBuilder.OrderBy("start_time DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateDetails обновляет ресурс, цель и окно бронирования. Статус не меняется.
func (r *Repository) UpdateDetails(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	roomID, serverID, err := resourceArgs(booking.Resource)
	if err != nil {
		return nil, err
	}

	query, args, err := r.qb.Update("bookings").
		Set("room_id", roomID).
		Set("server_id", serverID).
		Set("purpose", booking.Purpose).
		Set("start_time", r.qb.TimeArg(booking.StartTime)).
		Set("end_time", r.qb.TimeArg(booking.EndTime)).
		Set("updated_at", r.qb.TimeArg(domain.NormalizeInstant(r.now()))).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateDetails - build update query: %w", ErrBuildQuery, err)
	}

	if err := r.execAffectingOne(ctx, executor, "UpdateDetails", query, args); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, booking.ID)
}

// UpdateStatus обновляет статус бронирования и возвращает обновлённую запись
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if !status.IsStored() {
		return nil, fmt.Errorf("%w: UpdateStatus - %q", ErrInvalidStatus, status)
	}

	query, args, err := r.qb.Update("bookings").
		Set("status", string(status)).
		Set("updated_at", r.qb.TimeArg(domain.NormalizeInstant(r.now()))).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	if err := r.execAffectingOne(ctx, executor, "UpdateStatus", query, args); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete физически удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking                                domain.Booking
		roomID, serverID                       sql.NullInt64
		status                                 string
		startTime, endTime, createdAt, updated psqlbuilder.Time
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&roomID,
		&serverID,
		&booking.Purpose,
		&startTime,
		&endTime,
		&status,
		&createdAt,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	switch {
	case roomID.Valid:
		booking.Resource = domain.ResourceRef{Type: domain.ResourceRoom, ID: roomID.Int64}
	case serverID.Valid:
		booking.Resource = domain.ResourceRef{Type: domain.ResourceServer, ID: serverID.Int64}
	default:
		return nil, fmt.Errorf("%w: booking id=%d has no resource", ErrInvalidResource, booking.ID)
	}

	booking.Status = domain.BookingStatus(status)
	booking.StartTime = startTime.Time
	booking.EndTime = endTime.Time
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updated.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
