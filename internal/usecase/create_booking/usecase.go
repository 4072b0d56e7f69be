package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/availability"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// UseCase use case для создания бронирования
//
// Проверка расписания, проверка конфликтов и вставка выполняются как одна
// атомарная операция в сериализуемой транзакции с блокировкой строки
// автомобиля: из двух конкурентных запросов на пересекающиеся интервалы
// одного автомобиля выигрывает ровно один
type UseCase struct {
	bookingRepo  BookingRepository
	vehicleRepo  VehicleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	holdTTL      time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// holdTTL - время жизни неоплаченной pending-брони
func NewUseCase(
	bookingRepo BookingRepository,
	vehicleRepo VehicleRepository,
	txManager TransactionManager,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	if holdTTL <= 0 {
		holdTTL = domain.DefaultHoldTTLMinutes * time.Minute
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		holdTTL:      holdTTL,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, vehicle=%d, interval=[%s, %s), city=%s",
		req.UserID, req.VehicleID,
		req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339), req.City)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	interval := domain.Interval{StartAt: req.StartAt, EndAt: req.EndAt}

	// Переменная для хранения результата
	var result *domain.Booking

	// 3. Выполняем проверку-и-запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем строку автомобиля (FOR UPDATE) - точка взаимного
		// исключения на множество бронирований этого автомобиля
		vehicle, err := uc.vehicleRepo.GetByIDForUpdate(txCtx, req.VehicleID)
		if err != nil {
			if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
				uc.logger.Warn("CreateBooking: vehicle id=%d not found", req.VehicleID)
				return ErrVehicleNotFound
			}
			uc.logger.Error("CreateBooking: failed to get vehicle id=%d: %v", req.VehicleID, err)
			return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
		}

		// 3.2. Проверяем расписание, blackout-периоды и город
		if !availability.IsAvailable(vehicle, interval, req.City) {
			uc.logger.Warn("CreateBooking: vehicle id=%d is not available for [%s, %s) in %s",
				req.VehicleID, req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339), req.City)
			return ErrVehicleNotAvailable
		}

		// 3.3. Получаем блокирующие брони автомобиля (FOR UPDATE)
		blocking, err := uc.bookingRepo.GetBlockingByVehicle(txCtx, req.VehicleID, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocking bookings for vehicle id=%d: %v",
				req.VehicleID, err)
			return fmt.Errorf("%w: failed to get blocking bookings: %v", ErrInternal, err)
		}

		// 3.4. Проверяем пересечения с учётом буфера автомобиля
		if conflict := availability.FindConflict(interval, vehicle.BufferTimeHours, blocking, now); conflict != nil {
			uc.logger.Warn("CreateBooking: conflict with booking id=%d for vehicle id=%d (buffer=%dh)",
				conflict.ID, req.VehicleID, vehicle.BufferTimeHours)
			return ErrBookingConflict
		}

		// 3.5. Создаем pending-бронь с hold
		booking := &domain.Booking{
			VehicleID: req.VehicleID,
			UserID:    req.UserID,
			CompanyID: vehicle.CompanyID,
			DriverID:  req.DriverID,
			Interval:  interval,
			City:      req.City,
			Intercity: req.Intercity,
			Status:    domain.StatusPending,
			Amount:    req.Amount,
			ExpiresAt: ptr.Ptr(now.Add(uc.holdTTL)),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, hold until %s",
		result.ID, result.ExpiresAt.Format(time.RFC3339))

	// Конвертируем в response
	return &Response{
		ID:        result.ID,
		VehicleID: result.VehicleID,
		UserID:    result.UserID,
		CompanyID: result.CompanyID,
		DriverID:  result.DriverID,
		StartAt:   result.Interval.StartAt,
		EndAt:     result.Interval.EndAt,
		City:      result.City,
		Intercity: result.Intercity,
		Status:    string(result.Status),
		Amount:    result.Amount,
		ExpiresAt: *result.ExpiresAt,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}
