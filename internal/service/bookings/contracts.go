package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/integrations/events"
	"github.com/m04kA/SMC-ResourceBooking/pkg/resourcelock"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	LockResource(ctx context.Context, ref domain.ResourceRef) error
}

// AccessPolicy проверки доступа к бронированиям
type AccessPolicy interface {
	AuthorizeView(actor domain.Actor, booking *domain.Booking, now time.Time) error
	AuthorizeDelete(actor domain.Actor, booking *domain.Booking) error
	AuthorizeTransition(actor domain.Actor, booking *domain.Booking) error
	CanView(actor domain.Actor, booking *domain.Booking, now time.Time) bool
	CanOpenTab(actor domain.Actor, tab domain.BookingTab) bool
}

// ResourceLocker сериализует записи по ресурсу
type ResourceLocker = resourcelock.Locker

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// MetricsRecorder учёт переходов статуса
type MetricsRecorder interface {
	RecordTransition(to string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
