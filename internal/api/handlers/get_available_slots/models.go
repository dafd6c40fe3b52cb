package get_available_slots

import (
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	getAvailableSlots "github.com/lashroom/scheduling-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	ServiceID int64           `json:"serviceId"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
