package delete_resource

import (
	"context"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

type ResourceService interface {
	Delete(ctx context.Context, actor domain.Actor, ref domain.ResourceRef) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
