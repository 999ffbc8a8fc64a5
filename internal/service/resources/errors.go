package resources

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

var (
	// ErrResourceNotFound возвращается, когда комната или сервер не найдены
	ErrResourceNotFound = fmt.Errorf("resources: resource %w", domain.ErrNotFound)

	// ErrUnauthenticated возвращается, когда запрос пришёл без пользователя
	ErrUnauthenticated = fmt.Errorf("resources: %w: authentication required", domain.ErrForbidden)

	// ErrResourceBusy возвращается, когда ресурс не удалось заблокировать за отведённое время
	ErrResourceBusy = fmt.Errorf("resources: %w: resource is busy, try again", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("resources: internal error")
)
