package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	checkAvailability "github.com/m04kA/SMC-ResourceBooking/internal/usecase/check_availability"
)

const (
	msgMissingUser        = "отсутствует пользователь"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректный формат даты или времени"
	msgIncompleteWindow   = "выберите дату и слот бронирования"
	msgInvalidInput       = "некорректные данные запроса"
	msgResourceNotFound   = "ресурс не найден"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "доступ запрещен"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability
// Занятое окно не ошибка: ответ 200 с available=false и уведомлением.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /availability - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse window: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), actor, useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIncompleteInput):
			h.logger.Warn("POST /availability - Incomplete window: %v", err)
			handlers.RespondBadRequest(w, msgIncompleteWindow)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkAvailability.ErrResourceNotFound):
			h.logger.Warn("POST /availability - Resource not found: %s:%d", req.ResourceType, req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, checkAvailability.ErrBookingNotFound):
			h.logger.Warn("POST /availability - Excluded booking not found: %v", err)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("POST /availability - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /availability - Failed to check availability: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Checked: %s:%d available=%t", req.ResourceType, req.ResourceID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
