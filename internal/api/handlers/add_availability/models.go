package add_availability

import (
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	addAvailability "github.com/lashroom/scheduling-service/internal/usecase/add_availability"
	"github.com/lashroom/scheduling-service/pkg/types"
)

// AddAvailabilityRequest HTTP request model
type AddAvailabilityRequest struct {
	Date      string `json:"date"`      // "2026-09-14"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "19:00"
	Kind      string `json:"kind"`      // "open" или "break"
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AddAvailabilityRequest) ToUseCaseRequest() (*addAvailability.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим границы интервала
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &addAvailability.Request{
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Kind:      r.Kind,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ID:        resp.ID,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		Kind:      resp.Kind,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
