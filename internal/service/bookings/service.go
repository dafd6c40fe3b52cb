package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/lashroom/scheduling-service/internal/domain"
	bookingRepo "github.com/lashroom/scheduling-service/internal/infra/storage/booking"
	"github.com/lashroom/scheduling-service/internal/service/bookings/models"
)

// Service сервис для работы с записями клиентов
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List получает записи с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу, телефону клиента и
// включение отменённых записей
//
// Примеры использования:
// - Все активные записи: List(ctx, &ListBookingsRequest{})
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Записи за период: StartDate и EndDate указывают на разные даты
// - История клиента: указать ClientPhone
// - Включая отменённые: IncludeInactive = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.ClientPhone != nil {
		logMsg += fmt.Sprintf(", clientPhone=%s", *req.ClientPhone)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Complete отмечает подтверждённую запись как выполненную
// Доступно только мастеру
func (s *Service) Complete(ctx context.Context, id int64) error {
	s.logger.Info("Complete: completing booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Complete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Complete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCompleted() {
		s.logger.Warn("Complete: booking id=%d cannot be completed, status=%s", id, booking.Status)
		return ErrCannotComplete
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCompleted); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Complete: booking id=%d not found during update", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Complete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed booking id=%d", id)
	return nil
}
