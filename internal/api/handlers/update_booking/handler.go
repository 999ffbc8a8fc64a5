package update_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	updateBooking "github.com/m04kA/SMC-ResourceBooking/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUser        = "отсутствует пользователь"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректный формат даты или времени"
	msgIncompleteWindow   = "выберите дату и слот бронирования"
	msgInvalidInput       = "некорректные данные бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgResourceNotFound   = "ресурс не найден"
	msgResourceBusy       = "ресурс занят другой операцией, повторите запрос"
	msgForbidden          = "изменить можно только своё бронирование, ожидающее подтверждения"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse window: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), actor, useCaseReq)
	if err != nil {
		if handlers.RespondAvailabilityError(w, err) {
			h.logger.Warn("PUT /bookings/{id} - Window rejected: booking_id=%d, error=%v", bookingID, err)
			return
		}

		switch {
		case errors.Is(err, domain.ErrIncompleteInput):
			h.logger.Warn("PUT /bookings/{id} - Incomplete window: %v", err)
			handlers.RespondBadRequest(w, msgIncompleteWindow)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrResourceNotFound):
			h.logger.Warn("PUT /bookings/{id} - Resource not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, updateBooking.ErrResourceBusy):
			h.logger.Warn("PUT /bookings/{id} - Resource busy: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgResourceBusy)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated successfully: booking_id=%d, user_id=%d",
		bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
