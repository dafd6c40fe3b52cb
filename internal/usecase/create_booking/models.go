package create_booking

import (
	"time"

	"github.com/lashroom/scheduling-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ServiceID   int64            // ID услуги
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	ClientName  string           // Имя клиента
	ClientPhone string           // Телефон клиента
	Notes       *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64            // ID созданной записи
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи
	StartTime types.TimeString // Время начала
	EndTime   types.TimeString // Время окончания
	Status    string           // Статус записи

	// Денормализованные данные услуги
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги

	ClientName  string  // Имя клиента
	ClientPhone string  // Телефон клиента
	Notes       *string // Пожелания

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
