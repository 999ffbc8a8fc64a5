package check_availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

var (
	// ErrResourceNotFound возвращается, когда ресурс не существует
	ErrResourceNotFound = fmt.Errorf("check_availability: resource %w", domain.ErrNotFound)

	// ErrBookingNotFound возвращается, когда исключаемое бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("check_availability: booking %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
