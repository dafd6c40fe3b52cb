package get_day_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
	getDaySchedule "github.com/lashroom/scheduling-service/internal/usecase/get_day_schedule"
)

const (
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput = "некорректная дата расписания"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем дату из URL
	vars := mux.Vars(r)
	dateStr := vars["date"]

	useCaseReq, err := ToUseCaseRequest(dateStr)
	if err != nil {
		h.logger.Warn("GET /schedule/{date} - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrInvalidInput):
			h.logger.Warn("GET /schedule/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /schedule/{date} - Failed to get schedule: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule/{date} - Schedule retrieved: date=%s, entries=%d", dateStr, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
