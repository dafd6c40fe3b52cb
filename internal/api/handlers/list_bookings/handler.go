package list_bookings

import (
	"errors"
	"net/http"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
	"github.com/lashroom/scheduling-service/internal/service/bookings"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgInvalidFilter = "некорректный фильтр записей"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: startDate, endDate, status, clientPhone, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceReq, err := ToServiceRequest(
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("status"),
		query.Get("clientPhone"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
