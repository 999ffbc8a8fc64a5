package list_resources

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

const (
	msgMissingUser  = "отсутствует пользователь"
	msgInvalidType  = "некорректный тип ресурса, ожидается room или server"
	msgAccessDenied = "доступ запрещен"
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

// Handle GET /api/v1/resources?type=room|server
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /resources - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	resourceType := handlers.QueryString(r, "type")

	result, err := h.service.List(r.Context(), actor, resourceType)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /resources - Invalid type: %v", err)
			handlers.RespondBadRequest(w, msgInvalidType)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("GET /resources - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /resources - Failed to list resources: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources - Resources retrieved successfully: count=%d", len(result.Resources))
	handlers.RespondJSON(w, http.StatusOK, result)
}
