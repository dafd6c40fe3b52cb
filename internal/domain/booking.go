package domain

import (
	"strings"
	"time"
)

// BookingStatus статус записи клиента
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByMaster BookingStatus = "cancelled_by_master"
	StatusCancelledByClient BookingStatus = "cancelled_by_client"
)

// Booking запись клиента на услугу
type Booking struct {
	ID        int64
	ServiceID int64
	Date      time.Time
	Range     TimeRange
	Status    BookingStatus

	ClientName  string
	ClientPhone string
	Notes       *string // причина отмены попадает сюда

	// Денормализованные данные услуги для истории
	ServiceName  string
	ServicePrice float64

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive возвращает true, если запись занимает время в расписании.
// Завершённые и отменённые записи освобождают своё время.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal возвращает true для конечных статусов
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted ||
		b.Status == StatusCancelledByMaster ||
		b.Status == StatusCancelledByClient
}

// IsCancelled возвращает true, если запись была отменена
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByMaster || b.Status == StatusCancelledByClient
}

// CanBeConfirmed возвращает true, если запись можно подтвердить
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCompleted возвращает true, если запись можно завершить
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled возвращает true, если запись можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeDeleted возвращает true, если запись можно удалить.
// Подтверждённую запись сначала нужно отменить или завершить.
func (b *Booking) CanBeDeleted() bool {
	return b.Status == StatusPending || b.IsTerminal()
}

// HasValidClient проверяет обязательные клиентские поля (непустые после trim)
func (b *Booking) HasValidClient() bool {
	return strings.TrimSpace(b.ClientName) != "" && strings.TrimSpace(b.ClientPhone) != ""
}

// BookingsFilter фильтр для выборки записей мастером
type BookingsFilter struct {
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	ClientPhone     *string        // История записей клиента по телефону (опционально)
	IncludeInactive bool           // Включать ли завершённые и отменённые записи
}
