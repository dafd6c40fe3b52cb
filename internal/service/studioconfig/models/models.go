package models

import "github.com/lashroom/scheduling-service/internal/domain"

// UpdateConfigRequest запрос на обновление настроек студии
type UpdateConfigRequest struct {
	SlotStepMinutes         int `json:"slotStepMinutes"`
	AdvanceBookingDays      int `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`
}

// ToDomainConfig конвертирует request в domain модель
func (r *UpdateConfigRequest) ToDomainConfig() *domain.StudioConfig {
	return &domain.StudioConfig{
		SlotStepMinutes:         r.SlotStepMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}

// ConfigResponse ответ с настройками студии
type ConfigResponse struct {
	SlotStepMinutes         int `json:"slotStepMinutes"`
	AdvanceBookingDays      int `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(cfg *domain.StudioConfig) *ConfigResponse {
	if cfg == nil {
		return nil
	}

	return &ConfigResponse{
		SlotStepMinutes:         cfg.SlotStepMinutes,
		AdvanceBookingDays:      cfg.AdvanceBookingDays,
		MinBookingNoticeMinutes: cfg.MinBookingNoticeMinutes,
	}
}
