package add_availability

import (
	"fmt"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	"github.com/lashroom/scheduling-service/internal/schedule"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.EndTime.IsAfter(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if err := validateKind(req.Kind); err != nil {
		return err
	}

	return nil
}

// validateKind проверяет тип интервала
func validateKind(kind string) error {
	switch domain.IntervalKind(kind) {
	case domain.IntervalOpen, domain.IntervalBreak:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
}

// validateDate проверяет, что интервал добавляется не в прошлое
func validateDate(date time.Time, now time.Time) error {
	if schedule.IsDateInPast(date, now) {
		return ErrInvalidDate
	}
	return nil
}
