package domain

import "time"

// IntervalKind тип интервала доступности
type IntervalKind string

const (
	// IntervalOpen мастер принимает клиентов
	IntervalOpen IntervalKind = "open"
	// IntervalBreak перерыв, время недоступно для записи
	IntervalBreak IntervalKind = "break"
)

// AvailabilityInterval интервал доступности мастера на конкретную дату
type AvailabilityInterval struct {
	ID    int64
	Date  time.Time
	Range TimeRange
	Kind  IntervalKind

	// Consumed интервал закреплён за подтверждённой записью
	Consumed   bool
	ConsumedBy *int64 // ID записи, за которой закреплён интервал

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen проверяет, что интервал открыт для записи
func (i *AvailabilityInterval) IsOpen() bool {
	return i.Kind == IntervalOpen
}

// IsBreak проверяет, что интервал является перерывом
func (i *AvailabilityInterval) IsBreak() bool {
	return i.Kind == IntervalBreak
}

// IsBookable проверяет, что в интервал можно записаться
func (i *AvailabilityInterval) IsBookable() bool {
	return i.IsOpen() && !i.Consumed
}

// CanBeDeleted проверяет, что интервал можно удалить
func (i *AvailabilityInterval) CanBeDeleted() bool {
	return !i.Consumed
}

// IsConsumedBy проверяет, что интервал закреплён за указанной записью
func (i *AvailabilityInterval) IsConsumedBy(bookingID int64) bool {
	return i.Consumed && i.ConsumedBy != nil && *i.ConsumedBy == bookingID
}
