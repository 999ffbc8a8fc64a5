package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-ResourceBooking/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается, когда не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, когда не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationFailure возвращается, когда Postgres откатил транзакцию
	// из-за конфликта сериализации или дедлока. Повторять запрос должен клиент.
	ErrSerializationFailure = errors.New("txmanager: concurrent modification, transaction aborted")
)

// Postgres SQLSTATE коды конфликтов параллельных транзакций
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакции.
// Транзакция передаётся репозиториям через контекст (dbmetrics.WithTx).
type TransactionManager struct {
	db               TxBeginner
	isolationEnabled bool
}

// Option настройка менеджера транзакций
type Option func(*TransactionManager)

// WithoutIsolationLevels отключает явные уровни изоляции.
// Нужно для SQLite, где транзакции и так сериализуются блокировкой файла БД.
func WithoutIsolationLevels() Option {
	return func(m *TransactionManager) {
		m.isolationEnabled = false
	}
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{db: db, isolationEnabled: true}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует уже открытую транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	if !m.isolationEnabled {
		opts = nil
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback error: %v)", mapConcurrencyError(err), rbErr)
		}
		return mapConcurrencyError(err)
	}

	if err = tx.Commit(); err != nil {
		if isConcurrencyError(err) {
			return fmt.Errorf("%w: %w", ErrSerializationFailure, err)
		}
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

// mapConcurrencyError добавляет ErrSerializationFailure к ошибкам конфликтов,
// сохраняя исходную цепочку для errors.Is
func mapConcurrencyError(err error) error {
	if isConcurrencyError(err) && !errors.Is(err, ErrSerializationFailure) {
		return fmt.Errorf("%w: %w", ErrSerializationFailure, err)
	}
	return err
}

func isConcurrencyError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgSerializationFailure || pqErr.Code == pgDeadlockDetected
	}
	return false
}
