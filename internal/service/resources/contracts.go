package resources

import (
	"context"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/pkg/resourcelock"
)

// ResourceRepository интерфейс репозитория комнат и серверов
type ResourceRepository interface {
	Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error)
	GetByRef(ctx context.Context, ref domain.ResourceRef) (*domain.Resource, error)
	List(ctx context.Context, t domain.ResourceType) ([]*domain.Resource, error)
	Update(ctx context.Context, res *domain.Resource) (*domain.Resource, error)
	Delete(ctx context.Context, ref domain.ResourceRef) error
}

// AccessPolicy проверка прав на управление ресурсами
type AccessPolicy interface {
	AuthorizeManageResources(actor domain.Actor) error
}

// ResourceLocker сериализует записи по ресурсу
type ResourceLocker = resourcelock.Locker

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
