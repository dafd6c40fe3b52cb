package schedule

import "github.com/lashroom/scheduling-service/internal/domain"

// DecisionKind вид решения по потреблению доступности
type DecisionKind string

const (
	// DecisionConsume найден ровно один подходящий интервал — занять его
	DecisionConsume DecisionKind = "consume"
	// DecisionNoMatch подходящего интервала нет: запись подтверждена без
	// подкрепляющей доступности. Не фатально, но стоит показать оператору.
	DecisionNoMatch DecisionKind = "no_match"
	// DecisionAmbiguous подходящих интервалов несколько; выбран детерминированно
	// самый ранний, остальные перечислены для диагностики
	DecisionAmbiguous DecisionKind = "ambiguous"
	// DecisionAlreadyConsumed интервал уже занят этой же записью — повторный
	// прогон ни к чему не приводит (идемпотентность)
	DecisionAlreadyConsumed DecisionKind = "already_consumed"
)

// ConsumptionDecision решение, какой интервал доступности занять подтверждённой
// записью. Предупреждения — тоже значения: reconciliation не должен прерывать
// само подтверждение записи.
type ConsumptionDecision struct {
	Kind         DecisionKind
	IntervalID   int64   // заполнено для DecisionConsume и DecisionAmbiguous
	CandidateIDs []int64 // все кандидаты при DecisionAmbiguous
}

// ReconcileConsumption находит интервал доступности, который должна занять
// подтверждённая запись: та же дата, kind OPEN, ещё не занят, и диапазон
// интервала целиком содержит диапазон записи.
//
// Ровно один кандидат — занять его. Ноль — предупреждение no_match.
// Несколько — детерминированный выбор самого раннего по началу плюс
// предупреждение об амбивалентности (пересекающиеся интервалы доступности —
// скорее всего ошибка ввода мастера).
func ReconcileConsumption(booking *domain.Booking, availability []*domain.AvailabilityInterval) ConsumptionDecision {
	// Идемпотентность: если запись уже заняла какой-то интервал, выходим сразу
	for _, interval := range availability {
		if interval.IsConsumedBy(booking.ID) {
			return ConsumptionDecision{Kind: DecisionAlreadyConsumed, IntervalID: interval.ID}
		}
	}

	var candidates []*domain.AvailabilityInterval
	for _, interval := range availability {
		if !sameDay(interval.Date, booking.Date) {
			continue
		}
		if !interval.IsBookable() {
			continue
		}
		if interval.Range.Contains(booking.Range) {
			candidates = append(candidates, interval)
		}
	}

	switch len(candidates) {
	case 0:
		return ConsumptionDecision{Kind: DecisionNoMatch}
	case 1:
		return ConsumptionDecision{Kind: DecisionConsume, IntervalID: candidates[0].ID}
	default:
		chosen := candidates[0]
		ids := make([]int64, len(candidates))
		for i, c := range candidates {
			ids[i] = c.ID
			if c.Range.Start < chosen.Range.Start {
				chosen = c
			}
		}
		return ConsumptionDecision{Kind: DecisionAmbiguous, IntervalID: chosen.ID, CandidateIDs: ids}
	}
}

// ReleaseDecision решение об освобождении интервала при отмене/удалении записи
type ReleaseDecision struct {
	Release    bool
	IntervalID int64
}

// ReconcileRelease находит интервал, который нужно освободить после отмены или
// удаления записи. Освобождается только интервал, занятый именно этой записью —
// связь ведётся по явной ссылке ConsumedBy, а не восстанавливается по времени.
// Это защищает от двойного освобождения, когда флаг интервала успела выставить
// другая запись.
func ReconcileRelease(bookingID int64, availability []*domain.AvailabilityInterval) ReleaseDecision {
	for _, interval := range availability {
		if interval.IsConsumedBy(bookingID) {
			return ReleaseDecision{Release: true, IntervalID: interval.ID}
		}
	}
	return ReleaseDecision{}
}
