package domain

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// Дефолтные значения конфигурации студии
const (
	DefaultSlotStepMinutes         = 30
	DefaultAdvanceBookingDays      = 0  // 0 = без ограничения
	DefaultMinBookingNoticeMinutes = 60 // 1 час
)

// Ограничения бизнес-валидации
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 240
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // неделя
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxClientNameLength         = 150
	MaxClientPhoneLength        = 32
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не занимающие время в расписании
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelledByMaster,
	StatusCancelledByClient,
}

// ActiveStatuses статусы, занимающие время в расписании
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
