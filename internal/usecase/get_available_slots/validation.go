package get_available_slots

import (
	"fmt"
	"time"

	"github.com/lashroom/scheduling-service/internal/schedule"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для запроса слотов
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	if schedule.IsDateInPast(date, now) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := schedule.DateOnly(now).AddDate(0, 0, advanceBookingDays)
	if schedule.DateOnly(date).After(maxDate) {
		return fmt.Errorf("%w: can only view %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
