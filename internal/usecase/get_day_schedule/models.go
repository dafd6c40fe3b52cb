package get_day_schedule

import (
	"time"

	"github.com/lashroom/scheduling-service/pkg/types"
)

// Request модель запроса расписания дня
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response модель ответа с расписанием дня мастера
type Response struct {
	Date    time.Time // Дата расписания
	Entries []Entry   // Элементы расписания по возрастанию времени начала
}

// Entry элемент расписания: интервал доступности или активная запись
type Entry struct {
	Kind      string           // "availability" или "booking"
	StartTime types.TimeString // Время начала
	EndTime   types.TimeString // Время окончания

	// Для интервалов доступности
	IntervalID   int64  `json:",omitempty"` // ID интервала
	IntervalKind string `json:",omitempty"` // "open" или "break"
	Consumed     bool   `json:",omitempty"` // Интервал закреплён за записью
	ConsumedBy   *int64 `json:",omitempty"` // ID записи, занявшей интервал

	// Для записей
	BookingID   int64  `json:",omitempty"` // ID записи
	Status      string `json:",omitempty"` // Статус записи
	ClientName  string `json:",omitempty"` // Имя клиента
	ServiceName string `json:",omitempty"` // Название услуги
}
