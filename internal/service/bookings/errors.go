package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings: booking %w", domain.ErrNotFound)

	// ErrInvalidFilter возвращается при некорректных параметрах списка
	ErrInvalidFilter = fmt.Errorf("bookings: %w: invalid filter", domain.ErrInvalidInput)

	// ErrResourceBusy возвращается, когда ресурс не удалось заблокировать за отведённое время
	ErrResourceBusy = fmt.Errorf("bookings: %w: resource is busy, try again", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
