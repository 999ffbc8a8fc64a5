package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/integrations/events"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/lifecycle"
	"github.com/m04kA/SMC-ResourceBooking/pkg/resourcelock"
	"github.com/m04kA/SMC-ResourceBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	checker      AvailabilityChecker
	policy       AccessPolicy
	locker       ResourceLocker
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      MetricsRecorder
	timeProvider TimeProvider
	lockTimeout  time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	checker AvailabilityChecker,
	policy AccessPolicy,
	locker ResourceLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	lockTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		checker:      checker,
		policy:       policy,
		locker:       locker,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		lockTimeout:  lockTimeout,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка идут в одной сериализуемой транзакции под блокировкой ресурса,
// поэтому два параллельных запроса на одно окно не создадут пересекающиеся бронирования.
func (uc *UseCase) Execute(ctx context.Context, actor domain.Actor, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%d, resource=%s:%d, mode=%s",
		actor.UserID, req.ResourceType, req.ResourceID, req.Mode)

	// 1. Проверяем, что актор может бронировать
	if err := uc.policy.AuthorizeCreate(actor); err != nil {
		uc.logger.Warn("CreateBooking: access denied for user=%d", actor.UserID)
		return nil, err
	}

	// 2. Валидация входных данных
	ref, purpose, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 3. Владелец: администратор может бронировать за другого, гость всегда за себя
	ownerID := actor.UserID
	if req.UserID != nil {
		if uc.policy.CanBookOnBehalf(actor, *req.UserID) {
			ownerID = *req.UserID
		} else {
			uc.logger.Warn("CreateBooking: user=%d cannot book on behalf of user=%d, using own id",
				actor.UserID, *req.UserID)
		}
	}

	// 4. Превращаем выбор пользователя в окно
	window, err := domain.ResolveWindow(req.Mode, req.Window)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to resolve window: %v", err)
		return nil, err
	}

	// 5. Проверяем существование ресурса
	exists, err := uc.resourceRepo.Exists(ctx, ref)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check resource %s: %v", ref, err)
		return nil, fmt.Errorf("%w: failed to check resource: %w", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("CreateBooking: resource %s not found", ref)
		return nil, ErrResourceNotFound
	}

	// 6. Блокируем ресурс на время проверки и записи
	unlock, err := resourcelock.LockAll(ctx, uc.locker, uc.lockTimeout, ref.LockKey())
	if err != nil {
		if errors.Is(err, resourcelock.ErrLockTimeout) {
			uc.logger.Warn("CreateBooking: resource %s is busy", ref)
			return nil, ErrResourceBusy
		}
		uc.logger.Error("CreateBooking: failed to lock resource %s: %v", ref, err)
		return nil, fmt.Errorf("%w: failed to lock resource: %w", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Booking

	// 7. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Блокировка ресурса в БД (Postgres advisory lock)
		if err := uc.bookingRepo.LockResource(txCtx, ref); err != nil {
			return fmt.Errorf("%w: failed to lock resource in db: %w", ErrInternal, err)
		}

		// 7.2. Порядок, прошлое, пересечения
		if err := uc.checker.Check(txCtx, ref, window, nil); err != nil {
			return err
		}

		// 7.3. Сохраняем бронирование
		booking := &domain.Booking{
			UserID:    ownerID,
			Resource:  ref,
			Purpose:   purpose,
			StartTime: window.Start,
			EndTime:   window.End,
			Status:    lifecycle.InitialStatus(actor),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d status=%s", result.ID, result.Status)

	if uc.metrics != nil {
		uc.metrics.RecordBookingCreated(string(result.Resource.Type), string(result.Status))
	}

	now := uc.timeProvider.Now()
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.EventBookingCreated, result, actor, now)); err != nil {
			uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
		}
	}

	return models.FromDomainBooking(result, now), nil
}

// mapTxError ошибки проверки доступности возвращаются как есть, чтобы слой API построил уведомление
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidOrdering),
		errors.Is(err, domain.ErrInThePast),
		errors.Is(err, domain.ErrConflict):
		uc.logger.Warn("CreateBooking: availability check failed: %v", err)
		return err
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CreateBooking: concurrent modification: %v", err)
		return domain.ErrConcurrentModification
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: %v", err)
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}
}
