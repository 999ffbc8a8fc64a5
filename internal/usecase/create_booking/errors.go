package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

var (
	// ErrResourceNotFound возвращается, когда бронируемый ресурс не существует
	ErrResourceNotFound = fmt.Errorf("create_booking: resource %w", domain.ErrNotFound)

	// ErrResourceBusy возвращается, когда ресурс не удалось заблокировать за отведённое время
	ErrResourceBusy = fmt.Errorf("create_booking: %w: resource is busy, try again", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
