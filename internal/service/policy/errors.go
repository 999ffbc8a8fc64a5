package policy

import (
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// ErrAccessDenied возвращается, когда политика доступа запрещает действие
var ErrAccessDenied = fmt.Errorf("policy: %w: access denied", domain.ErrForbidden)
