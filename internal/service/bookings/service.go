package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ResourceBooking/internal/integrations/events"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/lifecycle"
	"github.com/m04kA/SMC-ResourceBooking/pkg/resourcelock"
	"github.com/m04kA/SMC-ResourceBooking/pkg/txmanager"
)

// Service сервис для чтения бронирований, смены статуса и удаления
type Service struct {
	bookingRepo  BookingRepository
	policy       AccessPolicy
	locker       ResourceLocker
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      MetricsRecorder
	timeProvider TimeProvider
	lockTimeout  time.Duration
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	policy AccessPolicy,
	locker ResourceLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	timeProvider TimeProvider,
	lockTimeout time.Duration,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		policy:       policy,
		locker:       locker,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: timeProvider,
		lockTimeout:  lockTimeout,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Гость видит свои бронирования и чужие активные, администратор видит всё.
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	if err := s.policy.AuthorizeView(actor, booking, now); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, now), nil
}

// List получает бронирования выбранной вкладки с фильтрами.
// Чужие бронирования, которые актору видеть нельзя, отбрасываются.
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for user=%d, tab=%q", actor.UserID, req.Tab)

	now := s.timeProvider.Now()

	filter, err := s.buildFilter(actor, req, now)
	if err != nil {
		s.logger.Warn("List: invalid filter for user=%d: %v", actor.UserID, err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	visible := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if s.policy.CanView(actor, b, now) {
			visible = append(visible, b)
		}
	}

	s.logger.Info("List: successfully fetched %d bookings for user=%d", len(visible), actor.UserID)
	return models.FromDomainBookingList(visible, now), nil
}

// buildFilter конвертирует параметры запроса в domain фильтр
func (s *Service) buildFilter(actor domain.Actor, req *models.ListBookingsRequest, now time.Time) (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter

	tab, err := models.ToDomainTab(req.Tab)
	if err != nil {
		return filter, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	if !s.policy.CanOpenTab(actor, tab) {
		return filter, fmt.Errorf("%w: tab %q is available to admins only", domain.ErrForbidden, tab)
	}

	switch tab {
	case domain.TabMine:
		filter.UserID = &actor.UserID
	case domain.TabRoom, domain.TabServer:
		resourceType := domain.ResourceType(tab)
		filter.ResourceType = &resourceType
		filter.ResourceID = req.ResourceID
	case domain.TabPending:
		status := domain.StatusPending
		filter.Status = &status
	case domain.TabRejected:
		status := domain.StatusRejected
		filter.Status = &status
	}

	if req.ResourceID != nil && filter.ResourceType == nil {
		return filter, fmt.Errorf("%w: resourceId requires room or server tab", ErrInvalidFilter)
	}

	if req.Status != nil {
		if !actor.IsAdmin() {
			return filter, fmt.Errorf("%w: status filter is available to admins only", domain.ErrForbidden)
		}
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return filter, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		if filter.Status != nil && *filter.Status != status {
			return filter, fmt.Errorf("%w: status conflicts with tab %q", ErrInvalidFilter, tab)
		}
		filter.Status = &status
	}

	if req.TimeStatus != nil {
		timeStatus, err := models.ToDomainTimeStatus(*req.TimeStatus)
		if err != nil {
			return filter, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		if timeStatus == domain.TimeStatusPast {
			filter.EndedBefore = &now
		} else {
			filter.EndsAfter = &now
		}
	}

	// Период задаётся датами, границы включительно
	if req.From != nil {
		from := startOfDay(*req.From)
		filter.EndFrom = &from
	}
	if req.To != nil {
		to := startOfDay(*req.To).Add(24*time.Hour - time.Second)
		filter.EndTo = &to
	}
	if filter.EndFrom != nil && filter.EndTo != nil && filter.EndTo.Before(*filter.EndFrom) {
		return filter, fmt.Errorf("%w: from must not be after to", ErrInvalidFilter)
	}

	return filter, nil
}

// Approve подтверждает бронирование (только администратор, только из pending)
func (s *Service) Approve(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	return s.transition(ctx, "Approve", actor, id, domain.StatusApproved, events.EventBookingApproved)
}

// Reject отклоняет бронирование (только администратор, только из pending)
func (s *Service) Reject(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	return s.transition(ctx, "Reject", actor, id, domain.StatusRejected, events.EventBookingRejected)
}

func (s *Service) transition(
	ctx context.Context,
	op string,
	actor domain.Actor,
	id int64,
	to domain.BookingStatus,
	eventType events.EventType,
) (*models.BookingResponse, error) {
	s.logger.Info("%s: user=%d changes booking id=%d to %s", op, actor.UserID, id, to)

	booking, err := s.getBooking(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.AuthorizeTransition(actor, booking); err != nil {
		s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, actor.UserID, id)
		return nil, err
	}

	unlock, err := s.lock(ctx, op, booking.Resource)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var updated *domain.Booking
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.LockResource(txCtx, booking.Resource); err != nil {
			return err
		}

		// Перечитываем под блокировкой: статус мог смениться параллельно
		current, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := lifecycle.Transition(actor, current, to, s.timeProvider.Now()); err != nil {
			return err
		}

		updated, err = s.bookingRepo.UpdateStatus(txCtx, id, to)
		return err
	})
	if err != nil {
		return nil, s.mapWriteError(op, id, err)
	}

	if s.metrics != nil {
		s.metrics.RecordTransition(string(to))
	}

	now := s.timeProvider.Now()
	s.publish(ctx, op, events.NewBookingEvent(eventType, updated, actor, now))

	s.logger.Info("%s: booking id=%d is now %s", op, id, to)
	return models.FromDomainBooking(updated, now), nil
}

// Delete удаляет бронирование.
// Администратор может удалить любое, владелец только своё pending.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: user=%d deletes booking id=%d", actor.UserID, id)

	booking, err := s.getBooking(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if err := s.policy.AuthorizeDelete(actor, booking); err != nil {
		s.logger.Warn("Delete: access denied for user=%d to booking id=%d", actor.UserID, id)
		return err
	}

	unlock, err := s.lock(ctx, "Delete", booking.Resource)
	if err != nil {
		return err
	}
	defer unlock()

	var deleted *domain.Booking
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.LockResource(txCtx, booking.Resource); err != nil {
			return err
		}

		current, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		// Статус мог смениться между чтением и блокировкой
		if err := s.policy.AuthorizeDelete(actor, current); err != nil {
			return err
		}

		deleted = current
		return s.bookingRepo.Delete(txCtx, id)
	})
	if err != nil {
		return s.mapWriteError("Delete", id, err)
	}

	s.publish(ctx, "Delete", events.NewBookingEvent(events.EventBookingDeleted, deleted, actor, s.timeProvider.Now()))

	s.logger.Info("Delete: booking id=%d deleted", id)
	return nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) lock(ctx context.Context, op string, ref domain.ResourceRef) (resourcelock.UnlockFunc, error) {
	unlock, err := resourcelock.LockAll(ctx, s.locker, s.lockTimeout, ref.LockKey())
	if err != nil {
		if errors.Is(err, resourcelock.ErrLockTimeout) {
			s.logger.Warn("%s: resource %s is busy", op, ref)
			return nil, ErrResourceBusy
		}
		s.logger.Error("%s: failed to lock resource %s: %v", op, ref, err)
		return nil, fmt.Errorf("%w: %s - lock resource: %w", ErrInternal, op, err)
	}
	return unlock, nil
}

// mapWriteError переводит ошибку транзакции в ошибку сервиса.
// Ошибки политики и жизненного цикла возвращаются как есть.
func (s *Service) mapWriteError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d disappeared", op, id)
		return ErrBookingNotFound
	case errors.Is(err, txmanager.ErrSerializationFailure):
		s.logger.Warn("%s: concurrent modification of booking id=%d", op, id)
		return domain.ErrConcurrentModification
	case errors.Is(err, domain.ErrForbidden):
		s.logger.Warn("%s: booking id=%d: %v", op, id, err)
		return err
	default:
		s.logger.Error("%s: failed for booking id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - transaction error: %w", ErrInternal, op, err)
	}
}

// publish отправляет событие после коммита. Ошибка публикации не откатывает операцию.
func (s *Service) publish(ctx context.Context, op string, event events.BookingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("%s: failed to publish %s for booking id=%d: %v", op, event.Type, event.BookingID, err)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
