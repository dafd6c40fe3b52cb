package delete_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
	deleteAvailability "github.com/lashroom/scheduling-service/internal/usecase/delete_availability"
)

const (
	msgInvalidIntervalID = "некорректный ID интервала"
	msgNotFound          = "интервал не найден"
	msgIntervalInUse     = "интервал закреплён за записью"
)

type Handler struct {
	useCase DeleteAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase DeleteAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/availability/{intervalId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем intervalId из URL
	vars := mux.Vars(r)
	intervalIDStr := vars["intervalId"]

	intervalID, err := strconv.ParseInt(intervalIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid interval ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIntervalID)
		return
	}

	if err := h.useCase.Execute(r.Context(), intervalID); err != nil {
		switch {
		case errors.Is(err, deleteAvailability.ErrIntervalNotFound):
			h.logger.Warn("DELETE /availability/{id} - Interval not found: interval_id=%d", intervalID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, deleteAvailability.ErrIntervalInUse):
			h.logger.Warn("DELETE /availability/{id} - Interval in use: interval_id=%d", intervalID)
			handlers.RespondError(w, http.StatusConflict, msgIntervalInUse)

		case errors.Is(err, deleteAvailability.ErrInvalidInput):
			h.logger.Warn("DELETE /availability/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidIntervalID)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete interval: interval_id=%d, error=%v",
				intervalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Interval deleted successfully: interval_id=%d", intervalID)
	w.WriteHeader(http.StatusNoContent)
}
