package check_availability

import (
	"context"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	checkAvailability "github.com/m04kA/SMC-ResourceBooking/internal/usecase/check_availability"
)

type CheckAvailabilityUseCase interface {
	Execute(ctx context.Context, actor domain.Actor, req *checkAvailability.Request) (*checkAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
