// Package schedule реализует ядро расписания: агрегацию дневной ленты,
// генерацию слотов, проверку конфликтов и правило потребления доступности.
//
// Пакет не владеет хранилищем: каждая функция принимает снимок данных
// и возвращает результат или решение. Вызывающий слой сам решает,
// когда перечитывать данные и как применять решения.
package schedule

import (
	"sort"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
)

// EntryKind тип элемента дневной ленты
type EntryKind string

const (
	EntryAvailability EntryKind = "availability"
	EntryBooking      EntryKind = "booking"
)

// TimelineEntry элемент дневной ленты: либо интервал доступности, либо запись
type TimelineEntry struct {
	Kind         EntryKind
	Availability *domain.AvailabilityInterval // заполнено при Kind == EntryAvailability
	Booking      *domain.Booking              // заполнено при Kind == EntryBooking
}

// Range возвращает временной диапазон элемента
func (e TimelineEntry) Range() domain.TimeRange {
	if e.Kind == EntryBooking {
		return e.Booking.Range
	}
	return e.Availability.Range
}

// DaySchedule снимок расписания мастера на один день.
// Хранит входные данные как есть; Entries и OccupiedRanges пересчитываются
// при каждом вызове, поэтому результат всегда детерминирован для одного снимка.
type DaySchedule struct {
	date         time.Time
	availability []*domain.AvailabilityInterval
	bookings     []*domain.Booking
}

// BuildDaySchedule собирает дневное расписание из снимков доступности и записей.
// Записи фильтруются до pending и confirmed: только они занимают время,
// завершённые и отменённые освобождают его.
func BuildDaySchedule(date time.Time, availability []*domain.AvailabilityInterval, bookings []*domain.Booking) *DaySchedule {
	active := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return &DaySchedule{
		date:         date,
		availability: availability,
		bookings:     active,
	}
}

// Date возвращает дату расписания
func (s *DaySchedule) Date() time.Time {
	return s.date
}

// Entries возвращает упорядоченную ленту дня: интервалы доступности и активные
// записи, отсортированные по началу диапазона. При равенстве стартов интервалы
// доступности идут раньше записей, далее порядок вставки (сортировка стабильная,
// tie-break чисто косметический).
func (s *DaySchedule) Entries() []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(s.availability)+len(s.bookings))
	for _, a := range s.availability {
		entries = append(entries, TimelineEntry{Kind: EntryAvailability, Availability: a})
	}
	for _, b := range s.bookings {
		entries = append(entries, TimelineEntry{Kind: EntryBooking, Booking: b})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := entries[i].Range(), entries[j].Range()
		if ri.Start != rj.Start {
			return ri.Start < rj.Start
		}
		return entries[i].Kind == EntryAvailability && entries[j].Kind == EntryBooking
	})

	return entries
}

// OccupiedRanges возвращает занятые диапазоны дня: активные записи и перерывы.
// Свободный OPEN-интервал сам по себе не занят — это предлагаемая ёмкость,
// а не обязательство.
func (s *DaySchedule) OccupiedRanges() []domain.TimeRange {
	occupied := make([]domain.TimeRange, 0, len(s.bookings)+len(s.availability))
	for _, e := range s.Entries() {
		switch e.Kind {
		case EntryBooking:
			occupied = append(occupied, e.Booking.Range)
		case EntryAvailability:
			if e.Availability.IsBreak() {
				occupied = append(occupied, e.Availability.Range)
			}
		}
	}
	return occupied
}
