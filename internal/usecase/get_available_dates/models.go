package get_available_dates

import "time"

// Request модель запроса на получение дат со свободными интервалами
type Request struct {
	From time.Time // Начало периода (включительно, без времени)
	To   time.Time // Конец периода (включительно, без времени)
}

// Response модель ответа со списком дат
type Response struct {
	From  time.Time   // Фактическое начало периода после отсечения прошлого
	To    time.Time   // Конец периода
	Dates []time.Time // Даты с хотя бы одним свободным открытым интервалом
}
