package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// RealTimeProvider реализация TimeProvider, возвращающая текущее время
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Checker проверяет, что окно корректно и ресурс в нём свободен.
// Только читает: повторный вызов с теми же данными даёт тот же результат.
type Checker struct {
	repo    BookingRepository
	clock   TimeProvider
	metrics MetricsRecorder
	logger  Logger
}

// NewChecker создает проверку доступности. metrics может быть nil.
func NewChecker(repo BookingRepository, clock TimeProvider, metrics MetricsRecorder, logger Logger) *Checker {
	return &Checker{
		repo:    repo,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// Check проверяет окно по порядку: упорядоченность, прошлое, пересечения.
// excludingID исключает редактируемое бронирование из проверки пересечений.
func (c *Checker) Check(ctx context.Context, ref domain.ResourceRef, window domain.TimeWindow, excludingID *int64) error {
	now := c.clock.Now()

	if err := ValidateWindow(window, now); err != nil {
		c.reject(ref, window, err)
		return err
	}

	bookings, err := c.repo.FindActiveForResource(ctx, ref, excludingID, now)
	if err != nil {
		c.logger.Error("Check: failed to load bookings for %s: %v", ref, err)
		return fmt.Errorf("%w: %s: %w", ErrRepository, ref, err)
	}

	if err := FindConflict(ref.Type, window, bookings); err != nil {
		c.reject(ref, window, err)
		return err
	}

	return nil
}

func (c *Checker) reject(ref domain.ResourceRef, window domain.TimeWindow, err error) {
	reason := rejectionReason(err)
	c.logger.Info("Check: %s rejected for %s [%s, %s)", reason, ref,
		window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))
	if c.metrics != nil {
		c.metrics.RecordAvailabilityRejection(reason)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidOrdering):
		return string(domain.NotificationInvalidOrdering)
	case errors.Is(err, domain.ErrInThePast):
		return string(domain.NotificationInThePast)
	case errors.Is(err, domain.ErrConflict):
		return string(domain.NotificationConflict)
	default:
		return "unknown"
	}
}

// ValidateWindow проверяет окно без обращения к хранилищу:
// конец строго позже начала и не в прошлом
func ValidateWindow(window domain.TimeWindow, now time.Time) error {
	if !window.IsOrdered() {
		return domain.ErrInvalidOrdering
	}
	if window.End.Before(now) {
		return domain.ErrInThePast
	}
	return nil
}

// FindConflict возвращает *domain.ConflictError для первого бронирования,
// пересекающегося с окном. bookings - активные бронирования того же ресурса.
func FindConflict(resourceType domain.ResourceType, window domain.TimeWindow, bookings []*domain.Booking) error {
	for _, b := range bookings {
		// Отклонённые бронирования ресурс не занимают
		if b.Status == domain.StatusRejected {
			continue
		}
		if window.Overlaps(b.Window()) {
			return &domain.ConflictError{ResourceType: resourceType, BookingID: b.ID}
		}
	}
	return nil
}
