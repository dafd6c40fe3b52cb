package get_available_slots

import (
	"time"

	"github.com/lashroom/scheduling-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	ServiceID int64     // ID услуги
	Slots     []Slot    // Список доступных слотов
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString // Время окончания слота
	DurationMinutes int              // Длительность слота в минутах
}
