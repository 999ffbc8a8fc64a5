package create_resource

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidResource    = "некорректные данные ресурса"
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

// Handle POST /api/v1/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /resources - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req models.CreateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resource, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /resources - Invalid resource: %v", err)
			handlers.RespondBadRequest(w, msgInvalidResource)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("POST /resources - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /resources - Failed to create resource: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /resources - Resource created successfully: %s:%d, user_id=%d",
		resource.Type, resource.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, resource)
}
