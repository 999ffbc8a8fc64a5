package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

const (
	msgMissingUser   = "отсутствует пользователь"
	msgInvalidQuery  = "некорректные параметры запроса"
	msgInvalidFilter = "некорректный фильтр бронирований"
	msgForbidden     = "вкладка или фильтр доступны только администратору"
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

// Handle GET /api/v1/bookings?tab=&timeStatus=&status=&resourceId=&from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("GET /bookings - Access denied: user_id=%d, tab=%q", actor.UserID, req.Tab)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: user_id=%d, count=%d",
		actor.UserID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
