package delete_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUser      = "отсутствует пользователь"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "удалить можно только своё бронирование, ожидающее подтверждения"
	msgResourceBusy     = "ресурс занят другой операцией, повторите запрос"
)

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

// Handle DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if err := h.service.Delete(r.Context(), actor, bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("DELETE /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("DELETE /bookings/{id} - Resource busy: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgResourceBusy)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted successfully: booking_id=%d, user_id=%d",
		bookingID, actor.UserID)
	w.WriteHeader(http.StatusNoContent)
}
