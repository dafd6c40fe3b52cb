package schedule

import "github.com/lashroom/scheduling-service/internal/domain"

// ConflictResult результат проверки на конфликт.
// Конфликт — ожидаемый, нормальный исход, поэтому это значение, а не ошибка:
// вызывающий слой ветвится на нём как на обычном control flow.
type ConflictResult struct {
	Conflict bool
	// With первый пересекающийся занятый диапазон (для диагностики)
	With *domain.TimeRange
}

// NoConflict результат без конфликта
func NoConflict() ConflictResult {
	return ConflictResult{}
}

// ConflictWith результат с указанием пересекающегося диапазона
func ConflictWith(r domain.TimeRange) ConflictResult {
	return ConflictResult{Conflict: true, With: &r}
}

// ValidateNoConflict проверяет кандидата против занятых диапазонов дня.
// Линейный скан, возвращает первый найденный конфликт. Корректность не зависит
// от порядка occupied — сортированность ленты не является контрактом.
//
// Проверка советующая: два конкурентных вызова могут оба увидеть NoConflict
// на одном устаревшем снимке. Авторитетная защита — exclusion constraint
// на уровне хранилища; эта функция даёт быстрый дружелюбный отказ до записи.
func ValidateNoConflict(candidate domain.TimeRange, occupied []domain.TimeRange) ConflictResult {
	for _, r := range occupied {
		if candidate.Overlaps(r) {
			return ConflictWith(r)
		}
	}
	return NoConflict()
}
