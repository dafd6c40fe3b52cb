package create_booking

import (
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	createBooking "github.com/lashroom/scheduling-service/internal/usecase/create_booking"
	"github.com/lashroom/scheduling-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   int64   `json:"serviceId"`
	Date        string  `json:"date"`      // "2026-09-14"
	StartTime   string  `json:"startTime"` // "10:00"
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	ServiceID    int64   `json:"serviceId"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	ClientName   string  `json:"clientName"`
	ClientPhone  string  `json:"clientPhone"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceID:   r.ServiceID,
		Date:        date,
		StartTime:   startTime,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		ServiceID:    resp.ServiceID,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		ClientName:   resp.ClientName,
		ClientPhone:  resp.ClientPhone,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
