package domain

import "time"

// StudioConfig настройки записи студии.
// Одна строка на студию (мастер работает один).
type StudioConfig struct {
	ID                      int64
	SlotStepMinutes         int // шаг генерации стартов слотов
	AdvanceBookingDays      int // 0 = без ограничения
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// HasAdvanceBookingLimit возвращает true, если глубина записи ограничена
func (c *StudioConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultStudioConfig возвращает конфигурацию с дефолтными значениями
func DefaultStudioConfig() *StudioConfig {
	return &StudioConfig{
		SlotStepMinutes:         DefaultSlotStepMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}
