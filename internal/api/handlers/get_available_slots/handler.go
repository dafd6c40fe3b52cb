package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
	getAvailableSlots "github.com/lashroom/scheduling-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgMissingServiceID   = "ID услуги обязателен"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceUnavailable = "услуга недоступна для записи"
	msgDateInPast         = "дата в прошлом"
	msgDateTooFar         = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем дату из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceUnavailable):
			h.logger.Warn("GET /available-slots - Service unavailable: service_id=%d", serviceID)
			handlers.RespondError(w, http.StatusConflict, msgServiceUnavailable)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Date in past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-slots - Date too far in future: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: service_id=%d, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved: service_id=%d, date=%s, count=%d",
		serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
