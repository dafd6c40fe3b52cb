package update_studio_config

import (
	"errors"
	"net/http"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
	"github.com/lashroom/scheduling-service/internal/service/studioconfig"
	"github.com/lashroom/scheduling-service/internal/service/studioconfig/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректные настройки студии"
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

// Handle PUT /api/v1/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, studioconfig.ErrInvalidInput):
			h.logger.Warn("PUT /config - Invalid config: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /config - Failed to update config: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /config - Config updated successfully: step=%d, advance_days=%d, notice=%d",
		result.SlotStepMinutes, result.AdvanceBookingDays, result.MinBookingNoticeMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
