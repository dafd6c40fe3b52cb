package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	"github.com/lashroom/scheduling-service/internal/infra/cache/slotscache"
	catalogRepo "github.com/lashroom/scheduling-service/internal/infra/storage/catalog"
	configRepo "github.com/lashroom/scheduling-service/internal/infra/storage/studioconfig"
	"github.com/lashroom/scheduling-service/internal/schedule"
	"github.com/lashroom/scheduling-service/pkg/types"
)

// UseCase use case для получения доступных слотов записи
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	serviceRepo      ServiceRepository
	configRepo       ConfigRepository
	slotsCache       SlotsCache
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	serviceRepo ServiceRepository,
	configRepo ConfigRepository,
	slotsCache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		serviceRepo:      serviceRepo,
		configRepo:       configRepo,
		slotsCache:       slotsCache,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Слоты считаются по свежему снимку дня; результат кэшируется по паре
// (услуга, дата), фильтр minBookingNoticeMinutes применяется после кэша,
// потому что зависит от текущего времени.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу и проверяем, что на неё можно записаться
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceUnavailable
	}

	// 4. Получаем настройки студии
	config, err := uc.configRepo.Get(ctx)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultStudioConfig()
		uc.logger.Info("GetAvailableSlots: using default studio config")
	}

	// 5. Валидация даты с учетом настроек
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 6. Пытаемся взять слоты из кэша
	slots, err := uc.slotsCache.Get(ctx, req.ServiceID, req.Date)
	if err != nil {
		if !errors.Is(err, slotscache.ErrCacheMiss) {
			uc.logger.Warn("GetAvailableSlots: cache error, recomputing: %v", err)
		}

		slots, err = uc.computeSlots(ctx, req.Date, service.DurationMinutes, config.SlotStepMinutes)
		if err != nil {
			return nil, err
		}

		if err := uc.slotsCache.Set(ctx, req.ServiceID, req.Date, slots); err != nil {
			uc.logger.Warn("GetAvailableSlots: failed to cache slots: %v", err)
		}
	} else {
		uc.logger.Info("GetAvailableSlots: cache hit for service=%d, date=%s",
			req.ServiceID, req.Date.Format(domain.DateFormat))
	}

	// 7. Для записи на сегодня отсекаем слоты, нарушающие minBookingNoticeMinutes
	slots = filterByNotice(slots, req.Date, now, config.MinBookingNoticeMinutes)

	uc.logger.Info("GetAvailableSlots: %d slots available for service=%d on %s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     toSlots(slots),
	}, nil
}

// computeSlots строит слоты по свежему снимку дня: генерирует кандидатов
// из пригодных открытых интервалов и отсекает конфликтующие с занятым временем
func (uc *UseCase) computeSlots(ctx context.Context, date time.Time, durationMinutes, stepMinutes int) ([]domain.TimeRange, error) {
	intervals, err := uc.availabilityRepo.ListByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}
	bookings, err := uc.bookingRepo.ListByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	slotLists := make([][]domain.TimeRange, 0, len(intervals))
	for _, interval := range intervals {
		slotLists = append(slotLists, schedule.GenerateSlots(interval, durationMinutes, stepMinutes))
	}
	candidates := schedule.MergeSlots(slotLists...)

	day := schedule.BuildDaySchedule(date, intervals, bookings)
	occupied := day.OccupiedRanges()

	slots := make([]domain.TimeRange, 0, len(candidates))
	for _, candidate := range candidates {
		if result := schedule.ValidateNoConflict(candidate, occupied); !result.Conflict {
			slots = append(slots, candidate)
		}
	}
	return slots, nil
}

// filterByNotice отсекает слоты, начинающиеся раньше, чем now + notice.
// Применяется только к запросам на сегодняшнюю дату.
func filterByNotice(slots []domain.TimeRange, date, now time.Time, noticeMinutes int) []domain.TimeRange {
	if !schedule.IsSameDay(date, now) {
		return slots
	}

	minStart := now.Hour()*60 + now.Minute() + noticeMinutes

	filtered := make([]domain.TimeRange, 0, len(slots))
	for _, slot := range slots {
		if slot.Start >= minStart {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

func toSlots(ranges []domain.TimeRange) []Slot {
	slots := make([]Slot, len(ranges))
	for i, r := range ranges {
		slots[i] = Slot{
			StartTime:       types.TimeStringFromMinutes(r.Start),
			EndTime:         types.TimeStringFromMinutes(r.End),
			DurationMinutes: r.DurationMinutes(),
		}
	}
	return slots
}
