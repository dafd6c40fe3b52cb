package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRange возвращается при некорректных границах диапазона
var ErrInvalidRange = errors.New("invalid time range")

// TimeRange полуоткрытый диапазон [Start, End) в минутах от полуночи.
// Обе границы лежат в пределах одного дня: 0 <= Start < End < 1440.
type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewTimeRange создает диапазон с валидацией границ
func NewTimeRange(start, end int) (TimeRange, error) {
	if start < 0 || start >= MinutesPerDay {
		return TimeRange{}, fmt.Errorf("%w: start %d out of day bounds", ErrInvalidRange, start)
	}
	if end <= 0 || end >= MinutesPerDay {
		return TimeRange{}, fmt.Errorf("%w: end %d out of day bounds", ErrInvalidRange, end)
	}
	if start >= end {
		return TimeRange{}, fmt.Errorf("%w: start %d must be before end %d", ErrInvalidRange, start, end)
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps проверяет пересечение двух диапазонов.
// Строгие неравенства: соприкасающиеся диапазоны не пересекаются.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// Contains проверяет, что other целиком лежит внутри r
func (r TimeRange) Contains(other TimeRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// DurationMinutes возвращает длительность диапазона в минутах
func (r TimeRange) DurationMinutes() int {
	return r.End - r.Start
}

// String возвращает диапазон в виде "09:00-19:00"
func (r TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", r.Start/60, r.Start%60, r.End/60, r.End%60)
}
