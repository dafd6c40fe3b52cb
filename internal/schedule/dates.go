package schedule

import "time"

// sameDay проверяет, что две даты относятся к одному и тому же дню
func sameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly обнуляет время, оставляя только дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	return DateOnly(date).Before(DateOnly(now))
}

// IsSameDay экспортированный вариант sameDay для вызывающих слоёв
func IsSameDay(date1, date2 time.Time) bool {
	return sameDay(date1, date2)
}
