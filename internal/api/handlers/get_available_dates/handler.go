package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
	getAvailableDates "github.com/lashroom/scheduling-service/internal/usecase/get_available_dates"
)

const (
	msgMissingBounds = "параметры from и to обязательны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod = "некорректный период"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-dates
// Query params: from (required, YYYY-MM-DD), to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /available-dates - Missing period bounds")
		handlers.RespondBadRequest(w, msgMissingBounds)
		return
	}

	useCaseReq, err := ToUseCaseRequest(fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /available-dates - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrInvalidPeriod):
			h.logger.Warn("GET /available-dates - Invalid period: from=%s, to=%s", fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /available-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingBounds)

		default:
			h.logger.Error("GET /available-dates - Failed to get dates: from=%s, to=%s, error=%v",
				fromStr, toStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-dates - Dates retrieved: from=%s, to=%s, count=%d",
		fromStr, toStr, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
