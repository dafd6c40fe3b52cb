package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	"github.com/lashroom/scheduling-service/internal/schedule"
	"github.com/lashroom/scheduling-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}
	if len(req.ClientPhone) > domain.MaxClientPhoneLength {
		return fmt.Errorf("%w: clientPhone is too long", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	if schedule.IsDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 означает отсутствие ограничения
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := schedule.DateOnly(now).AddDate(0, 0, advanceBookingDays)
	if schedule.DateOnly(bookingDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет, что запись не нарушает minBookingNoticeMinutes
func validateBookingTime(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	// Для записи не на сегодня проверка не нужна
	if !schedule.IsSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// validateWithinOpenHours проверяет, что слот целиком помещается
// в пригодный для записи открытый интервал
func validateWithinOpenHours(slot domain.TimeRange, intervals []*domain.AvailabilityInterval) error {
	for _, interval := range intervals {
		if interval.IsBookable() && interval.Range.Contains(slot) {
			return nil
		}
	}
	return ErrOutsideWorkingHours
}
