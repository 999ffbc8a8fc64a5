package policy

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// Policy проверки доступа к бронированиям и ресурсам.
// Решение зависит только от роли, владельца и статуса, состояния у политики нет.
type Policy struct{}

// New создает политику доступа
func New() *Policy {
	return &Policy{}
}

// CanView администратор видит всё. Гость видит свои бронирования в любом статусе
// и чужие pending/approved, которые ещё не закончились.
func (p *Policy) CanView(actor domain.Actor, booking *domain.Booking, now time.Time) bool {
	if actor.IsAdmin() {
		return true
	}
	if !actor.IsAuthenticated() {
		return false
	}
	if booking.IsOwnedBy(actor.UserID) {
		return true
	}
	return (booking.Status == domain.StatusPending || booking.Status == domain.StatusApproved) &&
		booking.EndTime.After(now)
}

// CanCreate бронировать может любой аутентифицированный пользователь
func (p *Policy) CanCreate(actor domain.Actor) bool {
	return actor.IsAuthenticated()
}

// CanUpdate администратор всегда, владелец только пока бронирование pending
func (p *Policy) CanUpdate(actor domain.Actor, booking *domain.Booking) bool {
	return p.canModify(actor, booking)
}

// CanDelete администратор всегда, владелец только пока бронирование pending
func (p *Policy) CanDelete(actor domain.Actor, booking *domain.Booking) bool {
	return p.canModify(actor, booking)
}

func (p *Policy) canModify(actor domain.Actor, booking *domain.Booking) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsAuthenticated() && booking.IsOwnedBy(actor.UserID) && booking.IsPending()
}

// CanTransition менять статус может только администратор
func (p *Policy) CanTransition(actor domain.Actor) bool {
	return actor.IsAdmin()
}

// CanManageResources создавать, менять и удалять комнаты и серверы может только администратор
func (p *Policy) CanManageResources(actor domain.Actor) bool {
	return actor.IsAdmin()
}

// CanBookOnBehalf бронировать за другого пользователя может только администратор
func (p *Policy) CanBookOnBehalf(actor domain.Actor, userID int64) bool {
	return userID == actor.UserID || actor.IsAdmin()
}

// CanOpenTab вкладки pending и rejected доступны только администратору
func (p *Policy) CanOpenTab(actor domain.Actor, tab domain.BookingTab) bool {
	return !tab.IsAdminOnly() || actor.IsAdmin()
}

// AuthorizeView возвращает ErrAccessDenied, если пользователь не может видеть бронирование
func (p *Policy) AuthorizeView(actor domain.Actor, booking *domain.Booking, now time.Time) error {
	if !p.CanView(actor, booking, now) {
		return fmt.Errorf("%w: view booking id=%d", ErrAccessDenied, booking.ID)
	}
	return nil
}

// AuthorizeCreate возвращает ErrAccessDenied для неаутентифицированного пользователя
func (p *Policy) AuthorizeCreate(actor domain.Actor) error {
	if !p.CanCreate(actor) {
		return fmt.Errorf("%w: create booking", ErrAccessDenied)
	}
	return nil
}

// AuthorizeUpdate возвращает ErrAccessDenied, если бронирование нельзя изменить
func (p *Policy) AuthorizeUpdate(actor domain.Actor, booking *domain.Booking) error {
	if !p.CanUpdate(actor, booking) {
		return fmt.Errorf("%w: update booking id=%d", ErrAccessDenied, booking.ID)
	}
	return nil
}

// AuthorizeDelete возвращает ErrAccessDenied, если бронирование нельзя удалить
func (p *Policy) AuthorizeDelete(actor domain.Actor, booking *domain.Booking) error {
	if !p.CanDelete(actor, booking) {
		return fmt.Errorf("%w: delete booking id=%d", ErrAccessDenied, booking.ID)
	}
	return nil
}

// AuthorizeTransition подтверждать и отклонять может только администратор
func (p *Policy) AuthorizeTransition(actor domain.Actor, booking *domain.Booking) error {
	if !p.CanTransition(actor) {
		return fmt.Errorf("%w: change status of booking id=%d", ErrAccessDenied, booking.ID)
	}
	return nil
}

// AuthorizeManageResources возвращает ErrAccessDenied, если пользователь не администратор
func (p *Policy) AuthorizeManageResources(actor domain.Actor) error {
	if !p.CanManageResources(actor) {
		return fmt.Errorf("%w: manage resources", ErrAccessDenied)
	}
	return nil
}
