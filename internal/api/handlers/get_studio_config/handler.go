package get_studio_config

import (
	"net/http"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /config - Failed to get config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /config - Config retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}
