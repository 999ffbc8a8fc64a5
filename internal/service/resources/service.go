package resources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	resourceRepo "github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/resources/models"
	"github.com/m04kA/SMC-ResourceBooking/pkg/resourcelock"
)

// Service сервис для работы с комнатами и серверами
type Service struct {
	resourceRepo ResourceRepository
	policy       AccessPolicy
	locker       ResourceLocker
	txManager    TransactionManager
	lockTimeout  time.Duration
	logger       Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(
	resourceRepo ResourceRepository,
	policy AccessPolicy,
	locker ResourceLocker,
	txManager TransactionManager,
	lockTimeout time.Duration,
	logger Logger,
) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		policy:       policy,
		locker:       locker,
		txManager:    txManager,
		lockTimeout:  lockTimeout,
		logger:       logger,
	}
}

// List возвращает ресурсы указанного типа, без типа - сначала комнаты, потом серверы.
// Доступно любому аутентифицированному пользователю.
func (s *Service) List(ctx context.Context, actor domain.Actor, resourceType *string) (*models.ResourceListResponse, error) {
	s.logger.Info("List: fetching resources type=%v for user=%d", resourceType, actor.UserID)

	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}

	types := []domain.ResourceType{domain.ResourceRoom, domain.ResourceServer}
	if resourceType != nil {
		t, err := domain.ParseResourceType(*resourceType)
		if err != nil {
			s.logger.Warn("List: invalid resource type=%q", *resourceType)
			return nil, err
		}
		types = []domain.ResourceType{t}
	}

	result := make([]*domain.Resource, 0)
	for _, t := range types {
		list, err := s.resourceRepo.List(ctx, t)
		if err != nil {
			s.logger.Error("List: repository error for type=%s: %v", t, err)
			return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
		}
		result = append(result, list...)
	}

	s.logger.Info("List: successfully fetched %d resources", len(result))
	return models.FromDomainResourceList(result), nil
}

// Get получает ресурс по ссылке
func (s *Service) Get(ctx context.Context, actor domain.Actor, ref domain.ResourceRef) (*models.ResourceResponse, error) {
	s.logger.Info("Get: fetching resource %s for user=%d", ref, actor.UserID)

	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	res, err := s.getResource(ctx, "Get", ref)
	if err != nil {
		return nil, err
	}

	return models.FromDomainResource(res), nil
}

// Create создает комнату или сервер. Только администратор.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("Create: creating %s %q by user=%d", req.Type, req.Name, actor.UserID)

	if err := s.policy.AuthorizeManageResources(actor); err != nil {
		s.logger.Warn("Create: access denied for user=%d", actor.UserID)
		return nil, err
	}

	resourceType, err := domain.ParseResourceType(req.Type)
	if err != nil {
		s.logger.Warn("Create: invalid resource type=%q", req.Type)
		return nil, err
	}

	res := req.ToDomainResource(resourceType)
	if err := res.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.resourceRepo.Create(ctx, res)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created %s", created.Ref())
	return models.FromDomainResource(created), nil
}

// Update обновляет ресурс. Только администратор.
// Поддерживает частичное обновление, тип ресурса не меняется.
func (s *Service) Update(
	ctx context.Context,
	actor domain.Actor,
	ref domain.ResourceRef,
	req *models.UpdateResourceRequest,
) (*models.ResourceResponse, error) {
	s.logger.Info("Update: updating resource %s by user=%d", ref, actor.UserID)

	if err := s.policy.AuthorizeManageResources(actor); err != nil {
		s.logger.Warn("Update: access denied for user=%d", actor.UserID)
		return nil, err
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	res, err := s.getResource(ctx, "Update", ref)
	if err != nil {
		return nil, err
	}

	req.ApplyToResource(res)
	if err := res.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for %s: %v", ref, err)
		return nil, err
	}

	updated, err := s.resourceRepo.Update(ctx, res)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("Update: resource %s not found during update", ref)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("Update: repository error for %s: %v", ref, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated %s", ref)
	return models.FromDomainResource(updated), nil
}

// Delete удаляет ресурс вместе с его бронированиями. Только администратор.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, ref domain.ResourceRef) error {
	s.logger.Info("Delete: deleting resource %s by user=%d", ref, actor.UserID)

	if err := s.policy.AuthorizeManageResources(actor); err != nil {
		s.logger.Warn("Delete: access denied for user=%d", actor.UserID)
		return err
	}
	if err := ref.Validate(); err != nil {
		return err
	}

	// Параллельное бронирование этого ресурса должно дождаться удаления
	unlock, err := resourcelock.LockAll(ctx, s.locker, s.lockTimeout, ref.LockKey())
	if err != nil {
		if errors.Is(err, resourcelock.ErrLockTimeout) {
			s.logger.Warn("Delete: resource %s is busy", ref)
			return ErrResourceBusy
		}
		s.logger.Error("Delete: failed to lock resource %s: %v", ref, err)
		return fmt.Errorf("%w: Delete - lock resource: %w", ErrInternal, err)
	}
	defer unlock()

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.resourceRepo.Delete(txCtx, ref)
	})
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("Delete: resource %s not found", ref)
			return ErrResourceNotFound
		}
		s.logger.Error("Delete: repository error for %s: %v", ref, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted %s", ref)
	return nil
}

func (s *Service) getResource(ctx context.Context, op string, ref domain.ResourceRef) (*domain.Resource, error) {
	res, err := s.resourceRepo.GetByRef(ctx, ref)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("%s: resource %s not found", op, ref)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("%s: repository error for %s: %v", op, ref, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return res, nil
}
