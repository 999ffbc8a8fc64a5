// Package lifecycle описывает жизненный цикл бронирования:
//
//	pending -> approved
//	pending -> rejected
//
// approved и rejected конечные, completed вычисляется при чтении и целью перехода не бывает.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// InitialStatus статус нового бронирования: администратор создаёт сразу подтверждённое
func InitialStatus(actor domain.Actor) domain.BookingStatus {
	if actor.IsAdmin() {
		return domain.StatusApproved
	}
	return domain.StatusPending
}

// Transition проверяет, может ли actor перевести бронирование в статус to.
// Сам статус не меняет: сохранение остаётся за вызывающим.
func Transition(actor domain.Actor, booking *domain.Booking, to domain.BookingStatus, now time.Time) error {
	if !actor.IsAdmin() {
		return ErrTransitionForbidden
	}

	from := booking.EffectiveStatus(now)
	if !allowed(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	return nil
}

func allowed(from, to domain.BookingStatus) bool {
	if from != domain.StatusPending {
		return false
	}
	return to == domain.StatusApproved || to == domain.StatusRejected
}
