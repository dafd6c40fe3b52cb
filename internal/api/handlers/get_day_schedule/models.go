package get_day_schedule

import (
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	getDaySchedule "github.com/lashroom/scheduling-service/internal/usecase/get_day_schedule"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Date    string          `json:"date"`
	Entries []ScheduleEntry `json:"entries"`
}

// ScheduleEntry элемент расписания дня
type ScheduleEntry struct {
	Kind      string `json:"kind"` // "availability" или "booking"
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	// Для интервалов доступности
	IntervalID   int64  `json:"intervalId,omitempty"`
	IntervalKind string `json:"intervalKind,omitempty"`
	Consumed     bool   `json:"consumed,omitempty"`
	ConsumedBy   *int64 `json:"consumedBy,omitempty"`

	// Для записей
	BookingID   int64  `json:"bookingId,omitempty"`
	Status      string `json:"status,omitempty"`
	ClientName  string `json:"clientName,omitempty"`
	ServiceName string `json:"serviceName,omitempty"`
}

// ToUseCaseRequest создает запрос use case из path параметра
func ToUseCaseRequest(dateStr string) (*getDaySchedule.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getDaySchedule.Request{Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	entries := make([]ScheduleEntry, len(resp.Entries))
	for i, entry := range resp.Entries {
		entries[i] = ScheduleEntry{
			Kind:         entry.Kind,
			StartTime:    entry.StartTime.String(),
			EndTime:      entry.EndTime.String(),
			IntervalID:   entry.IntervalID,
			IntervalKind: entry.IntervalKind,
			Consumed:     entry.Consumed,
			ConsumedBy:   entry.ConsumedBy,
			BookingID:    entry.BookingID,
			Status:       entry.Status,
			ClientName:   entry.ClientName,
			ServiceName:  entry.ServiceName,
		}
	}

	return &DayScheduleResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Entries: entries,
	}
}
