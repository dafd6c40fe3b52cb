package schedule

import (
	"sort"

	"github.com/lashroom/scheduling-service/internal/domain"
)

// GenerateSlots перечисляет кандидатов на начало записи внутри одного
// OPEN-интервала: t = interval.Start + k*stepMinutes, t + durationMinutes <= interval.End.
//
// Фиксированный шаг (а не «только первый подходящий») позволяет клиенту выбрать
// из нескольких стартов внутри длинного интервала без предварительной нарезки
// интервала в хранилище.
//
// Возвращает пустой срез (не ошибку), когда услуга не помещается в интервал,
// а также для перерывов и уже занятых интервалов.
func GenerateSlots(interval *domain.AvailabilityInterval, durationMinutes, stepMinutes int) []domain.TimeRange {
	if durationMinutes <= 0 || stepMinutes <= 0 {
		return []domain.TimeRange{}
	}
	if !interval.IsBookable() {
		return []domain.TimeRange{}
	}

	slots := make([]domain.TimeRange, 0)
	for t := interval.Range.Start; t+durationMinutes <= interval.Range.End; t += stepMinutes {
		slots = append(slots, domain.TimeRange{Start: t, End: t + durationMinutes})
	}
	return slots
}

// MergeSlots объединяет кандидатов из нескольких интервалов одного дня:
// union + сортировка по старту + дедупликация.
func MergeSlots(slotLists ...[]domain.TimeRange) []domain.TimeRange {
	merged := make([]domain.TimeRange, 0)
	for _, list := range slotLists {
		merged = append(merged, list...)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Start != merged[j].Start {
			return merged[i].Start < merged[j].Start
		}
		return merged[i].End < merged[j].End
	})

	deduped := merged[:0]
	for i, slot := range merged {
		if i == 0 || slot != merged[i-1] {
			deduped = append(deduped, slot)
		}
	}
	return deduped
}
