package models

import (
	"errors"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	"github.com/lashroom/scheduling-service/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение записей за период
type ListBookingsRequest struct {
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	ClientPhone     *string    `json:"clientPhone,omitempty"`     // Фильтр по телефону клиента
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		ClientPhone:     r.ClientPhone,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID          int64  `json:"id"`
	ServiceID   int64  `json:"serviceId"`
	Date        string `json:"date"`      // "2026-09-14"
	StartTime   string `json:"startTime"` // "10:00"
	EndTime     string `json:"endTime"`   // "12:00"
	Status      string `json:"status"`
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`

	// Денормализованные данные услуги
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		ServiceID:    b.ServiceID,
		Date:         b.Date.Format(domain.DateFormat),
		StartTime:    string(types.TimeStringFromMinutes(b.Range.Start)),
		EndTime:      string(types.TimeStringFromMinutes(b.Range.End)),
		Status:       string(b.Status),
		ClientName:   b.ClientName,
		ClientPhone:  b.ClientPhone,
		ServiceName:  b.ServiceName,
		ServicePrice: b.ServicePrice,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByMaster,
		domain.StatusCancelledByClient,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
