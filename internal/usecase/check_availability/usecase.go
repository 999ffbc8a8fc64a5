package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/booking"
)

// UseCase use case для проверки окна без записи.
// Блокировок не берёт: результат может устареть к моменту создания, окончательная проверка идёт при записи.
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	checker      AvailabilityChecker
	policy       AccessPolicy
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	checker AvailabilityChecker,
	policy AccessPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		checker:      checker,
		policy:       policy,
		logger:       logger,
	}
}

// Execute выполняет use case проверки доступности.
// Недоступное окно не ошибка: ответ содержит Available=false и уведомление.
func (uc *UseCase) Execute(ctx context.Context, actor domain.Actor, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: user=%d, resource=%s:%d, mode=%s",
		actor.UserID, req.ResourceType, req.ResourceID, req.Mode)

	// 1. Проверять окно может тот, кто может бронировать
	if err := uc.policy.AuthorizeCreate(actor); err != nil {
		uc.logger.Warn("CheckAvailability: access denied for user=%d", actor.UserID)
		return nil, err
	}

	// 2. Валидация ресурса
	resourceType, err := domain.ParseResourceType(req.ResourceType)
	if err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}
	ref := domain.ResourceRef{Type: resourceType, ID: req.ResourceID}
	if err := ref.Validate(); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 3. Превращаем выбор пользователя в окно
	window, err := domain.ResolveWindow(req.Mode, req.Window)
	if err != nil {
		uc.logger.Warn("CheckAvailability: failed to resolve window: %v", err)
		return nil, err
	}

	// 4. Исключать из проверки можно только бронирование, которое актор может менять
	if req.ExcludingID != nil {
		if err := uc.authorizeExcluding(ctx, actor, *req.ExcludingID); err != nil {
			return nil, err
		}
	}

	// 5. Проверяем существование ресурса
	exists, err := uc.resourceRepo.Exists(ctx, ref)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to check resource %s: %v", ref, err)
		return nil, fmt.Errorf("%w: failed to check resource: %w", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("CheckAvailability: resource %s not found", ref)
		return nil, ErrResourceNotFound
	}

	resp := &Response{
		Available: true,
		Resource:  ref,
		StartTime: window.Start,
		EndTime:   window.End,
	}

	// 6. Проверка окна
	if err := uc.checker.Check(ctx, ref, window, req.ExcludingID); err != nil {
		notification, ok := domain.NotificationFromError(err)
		if !ok {
			uc.logger.Error("CheckAvailability: check failed for %s: %v", ref, err)
			return nil, fmt.Errorf("%w: check failed: %w", ErrInternal, err)
		}
		resp.Available = false
		resp.Notification = &notification
	}

	uc.logger.Info("CheckAvailability: %s available=%t", ref, resp.Available)
	return resp, nil
}

func (uc *UseCase) authorizeExcluding(ctx context.Context, actor domain.Actor, id int64) error {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CheckAvailability: excluded booking id=%d not found", id)
			return ErrBookingNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get booking id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	if err := uc.policy.AuthorizeUpdate(actor, booking); err != nil {
		uc.logger.Warn("CheckAvailability: user=%d cannot exclude booking id=%d", actor.UserID, id)
		return err
	}
	return nil
}
