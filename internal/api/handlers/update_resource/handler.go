package update_resource

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/resources/models"
)

const (
	msgMissingUser        = "отсутствует пользователь"
	msgInvalidResourceRef = "некорректный тип или ID ресурса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidResource    = "некорректные данные ресурса"
	msgNotFound           = "ресурс не найден"
	msgAccessDenied       = "управлять ресурсами может только администратор"
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

// Handle PUT /api/v1/resources/{type}/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref, err := handlers.PathResourceRef(r)
	if err != nil {
		h.logger.Warn("PUT /resources/{type}/{id} - Invalid resource: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceRef)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /resources/{type}/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req models.UpdateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{type}/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resource, err := h.service.Update(r.Context(), actor, ref, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PUT /resources/{type}/{id} - Resource not found: %s", ref)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("PUT /resources/{type}/{id} - Invalid resource: %v", err)
			handlers.RespondBadRequest(w, msgInvalidResource)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("PUT /resources/{type}/{id} - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PUT /resources/{type}/{id} - Failed to update resource: %s, error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /resources/{type}/{id} - Resource updated successfully: %s, user_id=%d", ref, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, resource)
}
