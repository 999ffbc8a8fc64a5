package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteInput возвращается резолвером, когда выбор даты/слота неполный
	ErrIncompleteInput = errors.New("incomplete input")

	// ErrInvalidOrdering возвращается, когда конец окна не позже начала
	ErrInvalidOrdering = errors.New("invalid ordering: end must be after start")

	// ErrInThePast возвращается, когда окно бронирования уже закончилось
	ErrInThePast = errors.New("booking time period is in the past")

	// ErrConflict возвращается, когда окно пересекается с активным бронированием
	ErrConflict = errors.New("booking conflict")

	// ErrForbidden возвращается, когда действие запрещено политикой доступа или жизненным циклом
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound возвращается, когда бронирование или ресурс не найдены
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrConcurrentModification возвращается, когда параллельная запись помешала операции.
	// Клиент должен повторить запрос сам.
	ErrConcurrentModification = fmt.Errorf("%w: concurrent modification, please resubmit", ErrConflict)
)

// ConflictError описывает пересечение с существующим бронированием
type ConflictError struct {
	ResourceType ResourceType
	BookingID    int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s is already booked during the selected time period (booking id=%d)",
		ErrConflict, e.ResourceType.Title(), e.BookingID)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrConflict)
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

func wrapInvalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
