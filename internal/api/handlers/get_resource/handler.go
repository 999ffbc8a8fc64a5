package get_resource

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

const (
	msgMissingUser     = "отсутствует пользователь"
	msgInvalidResource = "некорректный тип или ID ресурса"
	msgNotFound        = "ресурс не найден"
	msgAccessDenied    = "доступ запрещен"
)

type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{type}/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref, err := handlers.PathResourceRef(r)
	if err != nil {
		h.logger.Warn("GET /resources/{type}/{id} - Invalid resource: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResource)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /resources/{type}/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	resource, err := h.service.Get(r.Context(), actor, ref)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /resources/{type}/{id} - Resource not found: %s", ref)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("GET /resources/{type}/{id} - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /resources/{type}/{id} - Failed to get resource: %s, error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{type}/{id} - Resource retrieved successfully: %s", ref)
	handlers.RespondJSON(w, http.StatusOK, resource)
}
