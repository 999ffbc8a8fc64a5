package delete_resource

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
	msgAccessDenied    = "управлять ресурсами может только администратор"
	msgResourceBusy    = "ресурс занят другой операцией, повторите запрос"
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

// Handle DELETE /api/v1/resources/{type}/{id}
// Бронирования ресурса удаляются вместе с ним.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref, err := handlers.PathResourceRef(r)
	if err != nil {
		h.logger.Warn("DELETE /resources/{type}/{id} - Invalid resource: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResource)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /resources/{type}/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if err := h.service.Delete(r.Context(), actor, ref); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("DELETE /resources/{type}/{id} - Resource not found: %s", ref)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("DELETE /resources/{type}/{id} - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("DELETE /resources/{type}/{id} - Resource busy: %s", ref)
			handlers.RespondConflict(w, msgResourceBusy)

		default:
			h.logger.Error("DELETE /resources/{type}/{id} - Failed to delete resource: %s, error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /resources/{type}/{id} - Resource deleted successfully: %s, user_id=%d", ref, actor.UserID)
	w.WriteHeader(http.StatusNoContent)
}
