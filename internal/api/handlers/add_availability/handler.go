package add_availability

import (
	"errors"
	"net/http"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
	addAvailability "github.com/lashroom/scheduling-service/internal/usecase/add_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateFormat  = "некорректный формат даты или времени"
	msgIntervalOverlap    = "интервал пересекается с существующим"
	msgInvalidDate        = "дата интервала в прошлом"
	msgInvalidKind        = "некорректный тип интервала, ожидается open или break"
	msgInvalidInput       = "некорректные данные интервала"
)

type Handler struct {
	useCase AddAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AddAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AddAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, addAvailability.ErrIntervalOverlap):
			h.logger.Warn("POST /availability - Interval overlap: date=%s, start=%s, end=%s",
				req.Date, req.StartTime, req.EndTime)
			handlers.RespondError(w, http.StatusConflict, msgIntervalOverlap)

		case errors.Is(err, addAvailability.ErrInvalidDate):
			h.logger.Warn("POST /availability - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, addAvailability.ErrInvalidKind):
			h.logger.Warn("POST /availability - Invalid kind: kind=%s", req.Kind)
			handlers.RespondBadRequest(w, msgInvalidKind)

		case errors.Is(err, addAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability - Failed to add interval: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Interval created successfully: interval_id=%d, date=%s, kind=%s",
		result.ID, req.Date, result.Kind)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
