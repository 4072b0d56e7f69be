package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

// Service state machine жизненного цикла бронирования
//
// Переходы строго монотонны: pending -> confirmed -> ongoing -> completed,
// cancelled достижим из pending и confirmed. Все переходы выполняются
// условными обновлениями на уровне строки (оптимистичная защита),
// повторная блокировка автомобиля не нужна: переходы не меняют интервал
type Service struct {
	bookingRepo  BookingRepository
	vehicleRepo  VehicleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	vehicleRepo VehicleRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// GetCompanyBookings получает бронирования компании с фильтрацией
// по автомобилю, периоду и статусу (данные для операционного экрана выдачи)
func (s *Service) GetCompanyBookings(ctx context.Context, req *models.GetCompanyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCompanyBookings: fetching bookings for company=%d", req.CompanyID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCompanyBookings: invalid filter for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCompanyBookings: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// AttachPayment сохраняет ссылку на платежный intent у pending-брони
// Возвращает ErrHoldExpired, если hold успел истечь
func (s *Service) AttachPayment(ctx context.Context, bookingID int64, paymentRef string) error {
	if paymentRef == "" {
		return fmt.Errorf("%w: paymentRef is required", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "AttachPayment", bookingID)
	if err != nil {
		return err
	}

	now := s.timeProvider.Now()

	if booking.HoldExpired(now) {
		s.logger.Warn("AttachPayment: hold expired for booking id=%d", bookingID)
		return ErrHoldExpired
	}
	if booking.Status != domain.StatusPending {
		s.logger.Warn("AttachPayment: booking id=%d is %s, not pending", bookingID, booking.Status)
		return ErrInvalidState
	}

	if err := s.bookingRepo.AttachPayment(ctx, bookingID, paymentRef, now); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleTransition) {
			// Состояние изменилось между чтением и записью
			return s.classifyStale(ctx, "AttachPayment", bookingID, now)
		}
		s.logger.Error("AttachPayment: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: AttachPayment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AttachPayment: payment ref attached to booking id=%d", bookingID)
	return nil
}

// ConfirmPayment переводит бронь pending -> confirmed после успешной оплаты
//
// Идемпотентен: повторное подтверждение уже confirmed-брони - no-op, не ошибка
// (платежные процессинги штатно ретраят webhook'и). Подтверждение брони,
// чей hold истёк или уже отменён уборкой, возвращает ErrHoldExpired -
// бронь не воскрешается, вызывающий обязан инициировать возврат средств
func (s *Service) ConfirmPayment(ctx context.Context, bookingID int64) error {
	booking, err := s.getBooking(ctx, "ConfirmPayment", bookingID)
	if err != nil {
		return err
	}

	now := s.timeProvider.Now()

	switch booking.Status {
	case domain.StatusConfirmed:
		s.logger.Info("ConfirmPayment: booking id=%d already confirmed, no-op", bookingID)
		return nil

	case domain.StatusPending:
		if booking.HoldExpired(now) {
			s.logger.Warn("ConfirmPayment: hold expired for booking id=%d, refund required", bookingID)
			return ErrHoldExpired
		}
		if booking.PaymentRef == nil {
			s.logger.Warn("ConfirmPayment: booking id=%d has no payment ref", bookingID)
			return ErrPaymentNotAttached
		}

	case domain.StatusCancelled:
		// Hold уже снят (уборкой или отменой) - деньги захвачены за бронь,
		// которая автомобиль не держит
		s.logger.Warn("ConfirmPayment: booking id=%d already cancelled, refund required", bookingID)
		return ErrHoldExpired

	default:
		s.logger.Warn("ConfirmPayment: booking id=%d is %s, out-of-order confirmation", bookingID, booking.Status)
		return ErrInvalidState
	}

	if err := s.bookingRepo.Confirm(ctx, bookingID, now); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleTransition) {
			// Гонка с конкурирующим подтверждением: перечитываем и решаем
			fresh, freshErr := s.getBooking(ctx, "ConfirmPayment", bookingID)
			if freshErr != nil {
				return freshErr
			}
			if fresh.Status == domain.StatusConfirmed {
				s.logger.Info("ConfirmPayment: booking id=%d confirmed concurrently, no-op", bookingID)
				return nil
			}
			return s.classifyStale(ctx, "ConfirmPayment", bookingID, now)
		}
		s.logger.Error("ConfirmPayment: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: ConfirmPayment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ConfirmPayment: booking id=%d confirmed", bookingID)
	return nil
}

// Handover фиксирует физическую выдачу автомобиля: confirmed -> ongoing
// Выдача раньше начала интервала не разрешена
func (s *Service) Handover(ctx context.Context, bookingID int64, at time.Time) error {
	booking, err := s.getBooking(ctx, "Handover", bookingID)
	if err != nil {
		return err
	}

	if booking.Status != domain.StatusConfirmed {
		s.logger.Warn("Handover: booking id=%d is %s, not confirmed", bookingID, booking.Status)
		return ErrInvalidState
	}
	if at.Before(booking.Interval.StartAt) {
		s.logger.Warn("Handover: booking id=%d handover at %s before interval start %s",
			bookingID, at.Format(time.RFC3339), booking.Interval.StartAt.Format(time.RFC3339))
		return fmt.Errorf("%w: handover before interval start", ErrInvalidState)
	}

	if err := s.bookingRepo.MarkOngoing(ctx, bookingID, at, s.timeProvider.Now()); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleTransition) {
			return ErrInvalidState
		}
		s.logger.Error("Handover: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Handover - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Handover: booking id=%d is now ongoing, handover at %s", bookingID, at.Format(time.RFC3339))
	return nil
}

// Complete фиксирует возврат автомобиля: ongoing -> completed
func (s *Service) Complete(ctx context.Context, bookingID int64) error {
	booking, err := s.getBooking(ctx, "Complete", bookingID)
	if err != nil {
		return err
	}

	if booking.Status != domain.StatusOngoing {
		s.logger.Warn("Complete: booking id=%d is %s, not ongoing", bookingID, booking.Status)
		return ErrInvalidState
	}

	if err := s.bookingRepo.Complete(ctx, bookingID, s.timeProvider.Now()); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleTransition) {
			return ErrInvalidState
		}
		s.logger.Error("Complete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: booking id=%d completed", bookingID)
	return nil
}

// Cancel отменяет бронирование
// pending отменяется всегда; confirmed - только пока не закрыто окно отмены
// автомобиля (now + cancellationWindow <= start, граница включительно)
func (s *Service) Cancel(ctx context.Context, bookingID int64, reason string) error {
	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	now := s.timeProvider.Now()

	if booking.Status == domain.StatusConfirmed {
		vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
		if err != nil {
			if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
				s.logger.Error("Cancel: vehicle id=%d not found for booking id=%d", booking.VehicleID, bookingID)
				return ErrVehicleNotFound
			}
			s.logger.Error("Cancel: failed to get vehicle id=%d: %v", booking.VehicleID, err)
			return fmt.Errorf("%w: Cancel - failed to get vehicle: %v", ErrInternal, err)
		}

		if now.Add(vehicle.CancellationWindow()).After(booking.Interval.StartAt) {
			s.logger.Warn("Cancel: cancellation window expired for booking id=%d (window=%dh)",
				bookingID, vehicle.CancellationWindowHours)
			return ErrCancellationWindowExpired
		}
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, reason, now); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleTransition) {
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled (reason=%q)", bookingID, reason)
	return nil
}

// ExpireStalePending отменяет все pending-брони с истёкшим hold
// Вызывается фоновой уборкой; отдельная блокировка с Create не нужна -
// проверка конфликтов и так игнорирует истёкшие pending-брони
func (s *Service) ExpireStalePending(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()

	expired, err := s.bookingRepo.ExpireStalePending(ctx, now)
	if err != nil {
		s.logger.Error("ExpireStalePending: repository error: %v", err)
		return 0, fmt.Errorf("%w: ExpireStalePending - repository error: %v", ErrInternal, err)
	}

	if expired > 0 {
		s.logger.Info("ExpireStalePending: cancelled %d stale pending bookings", expired)
	}
	return expired, nil
}

// getBooking читает бронь и маппит ошибку отсутствия
func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// classifyStale перечитывает бронь после неуспешного условного обновления
// и возвращает подходящую бизнес-ошибку
func (s *Service) classifyStale(ctx context.Context, op string, id int64, now time.Time) error {
	fresh, err := s.getBooking(ctx, op, id)
	if err != nil {
		return err
	}
	if fresh.HoldExpired(now) || fresh.Status == domain.StatusCancelled {
		return ErrHoldExpired
	}
	return ErrInvalidState
}
