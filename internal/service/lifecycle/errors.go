package lifecycle

import (
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

var (
	// ErrTransitionForbidden возвращается, когда статус пытается сменить не администратор
	ErrTransitionForbidden = fmt.Errorf("lifecycle: %w: only admins can change booking status", domain.ErrForbidden)

	// ErrInvalidTransition возвращается для перехода, которого нет в жизненном цикле
	ErrInvalidTransition = fmt.Errorf("lifecycle: %w: invalid status transition", domain.ErrForbidden)
)
