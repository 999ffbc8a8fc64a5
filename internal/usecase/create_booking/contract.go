package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/integrations/events"
	"github.com/m04kA/SMC-ResourceBooking/pkg/resourcelock"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	LockResource(ctx context.Context, ref domain.ResourceRef) error
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	Exists(ctx context.Context, ref domain.ResourceRef) (bool, error)
}

// AvailabilityChecker проверка окна перед записью
type AvailabilityChecker interface {
	Check(ctx context.Context, ref domain.ResourceRef, window domain.TimeWindow, excludingID *int64) error
}

// AccessPolicy проверки доступа на создание
type AccessPolicy interface {
	AuthorizeCreate(actor domain.Actor) error
	CanBookOnBehalf(actor domain.Actor, userID int64) bool
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

// MetricsRecorder учёт созданных бронирований
type MetricsRecorder interface {
	RecordBookingCreated(resourceType, status string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
