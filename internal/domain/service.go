package domain

import "time"

// Service услуга из каталога студии.
// Для ядра расписания каталог read-only: от услуги нужна только длительность.
type Service struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable возвращает true, если на услугу можно записаться
func (s *Service) IsBookable() bool {
	return s.Active && s.DurationMinutes > 0
}
