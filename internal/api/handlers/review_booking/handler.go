package review_booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/lifecycle"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgMissingUser       = "отсутствует пользователь"
	msgNotFound          = "бронирование не найдено"
	msgForbidden         = "менять статус может только администратор"
	msgInvalidTransition = "подтвердить или отклонить можно только ожидающее бронирование"
	msgResourceBusy      = "ресурс занят другой операцией, повторите запрос"
	msgConcurrent        = "бронирование изменилось параллельно, повторите запрос"
)

type transitionFunc func(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error)

// Handler подтверждение и отклонение бронирований администратором
type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleApprove PATCH /api/v1/bookings/{bookingId}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "approve", h.service.Approve)
}

// HandleReject PATCH /api/v1/bookings/{bookingId}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "reject", h.service.Reject)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, action string, transition transitionFunc) {
	route := fmt.Sprintf("PATCH /bookings/{id}/%s", action)

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing actor", route)
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	booking, err := transition(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%d", route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lifecycle.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: booking_id=%d", route, bookingID)
			handlers.RespondForbidden(w, msgInvalidTransition)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("%s - Access denied: booking_id=%d, user_id=%d", route, bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrConcurrentModification):
			h.logger.Warn("%s - Concurrent modification: booking_id=%d", route, bookingID)
			handlers.RespondConflict(w, msgConcurrent)

		case errors.Is(err, bookings.ErrResourceBusy):
			h.logger.Warn("%s - Resource busy: booking_id=%d", route, bookingID)
			handlers.RespondConflict(w, msgResourceBusy)

		default:
			h.logger.Error("%s - Failed to change status: booking_id=%d, error=%v", route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking status changed: booking_id=%d, status=%s, user_id=%d",
		route, bookingID, booking.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
