package check_availability

import (
	"context"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	Exists(ctx context.Context, ref domain.ResourceRef) (bool, error)
}

// AvailabilityChecker проверка окна
type AvailabilityChecker interface {
	Check(ctx context.Context, ref domain.ResourceRef, window domain.TimeWindow, excludingID *int64) error
}

// AccessPolicy проверки доступа
type AccessPolicy interface {
	AuthorizeCreate(actor domain.Actor) error
	AuthorizeUpdate(actor domain.Actor, booking *domain.Booking) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
