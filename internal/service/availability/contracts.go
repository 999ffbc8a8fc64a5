package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// BookingRepository источник активных бронирований ресурса
type BookingRepository interface {
	FindActiveForResource(ctx context.Context, ref domain.ResourceRef, excludingID *int64, now time.Time) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder учёт отказов проверки
type MetricsRecorder interface {
	RecordAvailabilityRejection(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
