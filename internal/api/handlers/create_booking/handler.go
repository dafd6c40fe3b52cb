package create_booking

import (
	"errors"
	"net/http"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
	createBooking "github.com/lashroom/scheduling-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateFormat   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceUnavailable  = "услуга недоступна для записи"
	msgInvalidDate         = "дата записи в прошлом"
	msgDateTooFar          = "дата записи слишком далеко в будущем"
	msgTooLateToBook       = "слишком поздно для записи на этот слот"
	msgOutsideWorkingHours = "слот не попадает в рабочие часы"
	msgSlotConflict        = "выбранный слот уже занят"
	msgInvalidInput        = "некорректные данные записи"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: service_id=%d, date=%s, start=%s",
				req.ServiceID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceUnavailable):
			h.logger.Warn("POST /bookings - Service unavailable: service_id=%d", req.ServiceID)
			handlers.RespondError(w, http.StatusConflict, msgServiceUnavailable)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: date=%s, start=%s", req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: date=%s, start=%s", req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, service_id=%d, date=%s",
		result.ID, result.ServiceID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
