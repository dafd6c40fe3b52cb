package add_availability

import (
	"time"

	"github.com/lashroom/scheduling-service/pkg/types"
)

// Request модель запроса на добавление интервала доступности
type Request struct {
	Date      time.Time        // Дата интервала (без времени)
	StartTime types.TimeString // Время начала (например, "09:00")
	EndTime   types.TimeString // Время окончания (например, "19:00")
	Kind      string           // Тип интервала: "open" или "break"
}

// Response модель ответа с созданным интервалом
type Response struct {
	ID        int64            // ID созданного интервала
	Date      time.Time        // Дата интервала
	StartTime types.TimeString // Время начала
	EndTime   types.TimeString // Время окончания
	Kind      string           // Тип интервала
	CreatedAt time.Time        // Время создания
}
