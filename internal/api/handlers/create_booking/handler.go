package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-ResourceBooking/internal/usecase/create_booking"
)

const (
	msgMissingUser        = "отсутствует пользователь"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректный формат даты или времени"
	msgIncompleteWindow   = "выберите дату и слот бронирования"
	msgInvalidInput       = "некорректные данные бронирования"
	msgResourceNotFound   = "ресурс не найден"
	msgResourceBusy       = "ресурс занят другой операцией, повторите запрос"
	msgAccessDenied       = "доступ запрещен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse window: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), actor, useCaseReq)
	if err != nil {
		// Порядок, прошлое и пересечение отдаются с уведомлением
		if handlers.RespondAvailabilityError(w, err) {
			h.logger.Warn("POST /bookings - Window rejected: user_id=%d, resource=%s:%d, error=%v",
				actor.UserID, req.ResourceType, req.ResourceID, err)
			return
		}

		switch {
		case errors.Is(err, domain.ErrIncompleteInput):
			h.logger.Warn("POST /bookings - Incomplete window: %v", err)
			handlers.RespondBadRequest(w, msgIncompleteWindow)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: %s:%d", req.ResourceType, req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createBooking.ErrResourceBusy):
			h.logger.Warn("POST /bookings - Resource busy: %s:%d", req.ResourceType, req.ResourceID)
			handlers.RespondConflict(w, msgResourceBusy)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("POST /bookings - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, status=%s",
		result.ID, result.UserID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
