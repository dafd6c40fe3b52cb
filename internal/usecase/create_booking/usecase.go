package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/lashroom/scheduling-service/internal/domain"
	bookingRepo "github.com/lashroom/scheduling-service/internal/infra/storage/booking"
	catalogRepo "github.com/lashroom/scheduling-service/internal/infra/storage/catalog"
	configRepo "github.com/lashroom/scheduling-service/internal/infra/storage/studioconfig"
	"github.com/lashroom/scheduling-service/internal/schedule"
	"github.com/lashroom/scheduling-service/pkg/types"
)

// UseCase use case для создания записи клиентом
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	serviceRepo      ServiceRepository
	configRepo       ConfigRepository
	txManager        TransactionManager
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
	txManager TransactionManager,
	slotsCache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		serviceRepo:      serviceRepo,
		configRepo:       configRepo,
		txManager:        txManager,
		slotsCache:       slotsCache,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// проверка конфликтов и вставка происходят на одном снимке дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, date=%s, time=%s, client=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.ClientName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу и проверяем, что на неё можно записаться
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsBookable() {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceUnavailable
	}

	// 4. Вычисляем слот записи из времени начала и длительности услуги
	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	slot, err := domain.NewTimeRange(startMinutes, startMinutes+service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot does not fit into the day: %v", err)
		return nil, fmt.Errorf("%w: slot does not fit into the day", ErrInvalidInput)
	}

	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем настройки студии
		config, err := uc.configRepo.Get(txCtx)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		if config == nil {
			config = domain.DefaultStudioConfig()
			uc.logger.Info("CreateBooking: using default studio config")
		}

		// 5.2. Валидация даты с учетом настроек
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 5.3. Валидация времени записи (minBookingNoticeMinutes)
		if err := validateBookingTime(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 5.4. Загружаем день с блокировкой строк (FOR UPDATE)
		intervals, err := uc.availabilityRepo.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}
		bookings, err := uc.bookingRepo.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.5. Слот должен целиком помещаться в открытый интервал
		if err := validateWithinOpenHours(slot, intervals); err != nil {
			uc.logger.Warn("CreateBooking: slot %s is outside open hours on %s",
				slot, req.Date.Format(domain.DateFormat))
			return err
		}

		// 5.6. Проверяем конфликты с занятым временем дня
		day := schedule.BuildDaySchedule(req.Date, intervals, bookings)
		if conflict := schedule.ValidateNoConflict(slot, day.OccupiedRanges()); conflict.Conflict {
			uc.logger.Warn("CreateBooking: slot %s conflicts with %s", slot, conflict.With)
			return ErrSlotConflict
		}

		// 5.7. Создаем запись со статусом pending и денормализацией услуги
		booking := &domain.Booking{
			ServiceID:    req.ServiceID,
			Date:         schedule.DateOnly(req.Date),
			Range:        slot,
			Status:       domain.StatusPending,
			ClientName:   req.ClientName,
			ClientPhone:  req.ClientPhone,
			Notes:        req.Notes,
			ServiceName:  service.Name,
			ServicePrice: service.Price,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingOverlap) {
				// Exclusion constraint отклонил пересечение, которое
				// советующая проверка не увидела
				uc.logger.Warn("CreateBooking: slot %s rejected by overlap constraint", slot)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 6. Сбрасываем кэш слотов этого дня (не критично при ошибке)
	if err := uc.slotsCache.InvalidateDate(ctx, req.Date); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate slots cache: %v", err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		ServiceID:    result.ServiceID,
		Date:         result.Date,
		StartTime:    types.TimeStringFromMinutes(result.Range.Start),
		EndTime:      types.TimeStringFromMinutes(result.Range.End),
		Status:       string(result.Status),
		ServiceName:  result.ServiceName,
		ServicePrice: result.ServicePrice,
		ClientName:   result.ClientName,
		ClientPhone:  result.ClientPhone,
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
