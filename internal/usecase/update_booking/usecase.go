package update_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ResourceBooking/internal/integrations/events"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ResourceBooking/pkg/resourcelock"
	"github.com/m04kA/SMC-ResourceBooking/pkg/txmanager"
)

// UseCase use case для изменения ресурса, цели или окна бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	checker      AvailabilityChecker
	policy       AccessPolicy
	locker       ResourceLocker
	txManager    TransactionManager
	publisher    EventPublisher
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
		timeProvider: &RealTimeProvider{},
		lockTimeout:  lockTimeout,
		logger:       logger,
	}
}

// Execute выполняет use case изменения бронирования.
// Доступность перепроверяется всегда, само бронирование исключается из поиска пересечений.
func (uc *UseCase) Execute(ctx context.Context, actor domain.Actor, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("UpdateBooking: user=%d, booking=%d", actor.UserID, req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее бронирование
	current, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	// 3. Администратор меняет любое, владелец только своё pending
	if err := uc.policy.AuthorizeUpdate(actor, current); err != nil {
		uc.logger.Warn("UpdateBooking: access denied for user=%d to booking id=%d", actor.UserID, req.BookingID)
		return nil, err
	}

	// 4. Собираем новое состояние
	next, err := applyRequest(current, req)
	if err != nil {
		uc.logger.Warn("UpdateBooking: invalid changes for booking id=%d: %v", req.BookingID, err)
		return nil, err
	}

	// 5. Новый ресурс должен существовать
	if next.Resource != current.Resource {
		exists, err := uc.resourceRepo.Exists(ctx, next.Resource)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to check resource %s: %v", next.Resource, err)
			return nil, fmt.Errorf("%w: failed to check resource: %w", ErrInternal, err)
		}
		if !exists {
			uc.logger.Warn("UpdateBooking: resource %s not found", next.Resource)
			return nil, ErrResourceNotFound
		}
	}

	// 6. Блокируем старый и новый ресурс
	refs := lockOrder(current.Resource, next.Resource)
	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		keys = append(keys, ref.LockKey())
	}

	unlock, err := resourcelock.LockAll(ctx, uc.locker, uc.lockTimeout, keys...)
	if err != nil {
		if errors.Is(err, resourcelock.ErrLockTimeout) {
			uc.logger.Warn("UpdateBooking: resources %v are busy", keys)
			return nil, ErrResourceBusy
		}
		uc.logger.Error("UpdateBooking: failed to lock resources %v: %v", keys, err)
		return nil, fmt.Errorf("%w: failed to lock resources: %w", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Booking

	// 7. Перепроверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for _, ref := range refs {
			if err := uc.bookingRepo.LockResource(txCtx, ref); err != nil {
				return fmt.Errorf("%w: failed to lock resource in db: %w", ErrInternal, err)
			}
		}

		// 7.1. Перечитываем: статус мог смениться до блокировки
		fresh, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return err
		}
		if err := uc.policy.AuthorizeUpdate(actor, fresh); err != nil {
			return err
		}

		updated, err := applyRequest(fresh, req)
		if err != nil {
			return err
		}

		// 7.2. Проверка окна без учёта самого бронирования
		if err := uc.checker.Check(txCtx, updated.Resource, updated.Window(), &updated.ID); err != nil {
			return err
		}

		// 7.3. Сохраняем
		saved, err := uc.bookingRepo.UpdateDetails(txCtx, updated)
		if err != nil {
			return err
		}

		result = saved
		return nil
	})
	if err != nil {
		return nil, uc.mapTxError(req.BookingID, err)
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d", result.ID)

	now := uc.timeProvider.Now()
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.EventBookingUpdated, result, actor, now)); err != nil {
			uc.logger.Warn("UpdateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
		}
	}

	return models.FromDomainBooking(result, now), nil
}

func (uc *UseCase) mapTxError(id int64, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		uc.logger.Warn("UpdateBooking: booking id=%d disappeared", id)
		return ErrBookingNotFound
	case errors.Is(err, domain.ErrInvalidOrdering),
		errors.Is(err, domain.ErrInThePast),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrIncompleteInput):
		uc.logger.Warn("UpdateBooking: booking id=%d rejected: %v", id, err)
		return err
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("UpdateBooking: concurrent modification of booking id=%d", id)
		return domain.ErrConcurrentModification
	case errors.Is(err, ErrInternal):
		uc.logger.Error("UpdateBooking: %v", err)
		return err
	default:
		uc.logger.Error("UpdateBooking: transaction failed for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}
}

// lockOrder возвращает ресурсы без повторов в порядке ключей блокировки
func lockOrder(refs ...domain.ResourceRef) []domain.ResourceRef {
	unique := make([]domain.ResourceRef, 0, len(refs))
	for _, ref := range refs {
		duplicate := false
		for _, u := range unique {
			if u == ref {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, ref)
		}
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].LockKey() < unique[j].LockKey()
	})
	return unique
}
