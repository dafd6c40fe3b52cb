package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

const timeLayout = "15:04"

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// TimeString время суток в формате "HH:MM" (без даты и часового пояса).
// Единственная точка трансляции между внешним представлением времени
// (JSON, query-параметры) и минутами с начала суток, которыми оперирует ядро.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(timeLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(s), nil
}

// NewTimeStringFromMinutes создает TimeString из минут с начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes is out of day bounds", ErrInvalidTimeString, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// TimeStringFromMinutes форматирует минуты с начала суток в "HH:MM"
// без проверки границ. Для значений, уже прошедших доменную валидацию.
func TimeStringFromMinutes(minutes int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат "HH:MM"
func (t TimeString) Validate() error {
	_, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед.
// Ошибка, если результат выходит за пределы суток.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}
