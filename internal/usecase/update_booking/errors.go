package update_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("update_booking: booking %w", domain.ErrNotFound)

	// ErrResourceNotFound возвращается, когда новый ресурс не существует
	ErrResourceNotFound = fmt.Errorf("update_booking: resource %w", domain.ErrNotFound)

	// ErrResourceBusy возвращается, когда ресурс не удалось заблокировать за отведённое время
	ErrResourceBusy = fmt.Errorf("update_booking: %w: resource is busy, try again", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("update_booking: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
