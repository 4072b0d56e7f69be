package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
)

// Service вычисляет напоминания по броням
//
// Напоминания нигде не хранятся и не ставятся в очередь: они чистая
// проекция статуса брони и текущего времени. Один и тот же вызов в
// разные моменты времени даёт разные (но детерминированные) ответы
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	lead         time.Duration
	logger       Logger
}

// NewService создает новый экземпляр сервиса напоминаний
// lead - за сколько до события появляется напоминание
func NewService(bookingRepo BookingRepository, lead time.Duration, logger Logger) *Service {
	if lead <= 0 {
		lead = domain.DefaultReminderLeadMinutes * time.Minute
	}
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		lead:         lead,
		logger:       logger,
	}
}

// GetForBooking возвращает актуальное напоминание по брони или nil,
// если напоминать не о чем
func (s *Service) GetForBooking(ctx context.Context, bookingID int64) (*domain.Reminder, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetForBooking: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetForBooking: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetForBooking - repository error: %v", ErrInternal, err)
	}

	return Derive(booking, s.timeProvider.Now(), s.lead), nil
}

// Derive вычисляет напоминание по брони на момент now
//
// Правила:
//   - confirmed и до начала осталось не больше lead -> upcoming_delivery
//   - ongoing и до конца осталось не больше lead -> upcoming_return
//   - ongoing и конец уже в прошлом -> overdue_return
//
// pending, cancelled и completed брони напоминаний не порождают,
// как и confirmed-бронь, чьё начало уже наступило: к этому моменту
// либо произошла выдача (ongoing), либо напоминать поздно
func Derive(b *domain.Booking, now time.Time, lead time.Duration) *domain.Reminder {
	if b == nil {
		return nil
	}

	switch b.Status {
	case domain.StatusConfirmed:
		start := b.Interval.StartAt
		if now.Before(start) && !start.After(now.Add(lead)) {
			return &domain.Reminder{
				Kind:      domain.ReminderUpcomingDelivery,
				BookingID: b.ID,
				DueAt:     start,
			}
		}

	case domain.StatusOngoing:
		end := b.Interval.EndAt
		if now.After(end) {
			return &domain.Reminder{
				Kind:      domain.ReminderOverdueReturn,
				BookingID: b.ID,
				DueAt:     end,
			}
		}
		if !end.After(now.Add(lead)) {
			return &domain.Reminder{
				Kind:      domain.ReminderUpcomingReturn,
				BookingID: b.ID,
				DueAt:     end,
			}
		}
	}

	return nil
}
