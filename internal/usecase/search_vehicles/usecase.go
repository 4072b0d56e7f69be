package search_vehicles

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/availability"
	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// UseCase use case поиска автомобилей, чье расписание покрывает интервал
//
// Выдача фильтруется чистым матчером и намеренно не смотрит на занятость:
// расписание отвечает на вопрос «может ли автомобиль в принципе», занятость
// проверяется атомарно в момент создания брони
type UseCase struct {
	vehicleRepo VehicleRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(vehicleRepo VehicleRepository, logger Logger) *UseCase {
	return &UseCase{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// Execute выполняет поиск доступных автомобилей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchVehicles: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SearchVehicles: interval=[%s, %s), city=%s",
		req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339), req.City)

	vehicles, err := uc.vehicleRepo.List(ctx)
	if err != nil {
		uc.logger.Error("SearchVehicles: failed to list vehicles: %v", err)
		return nil, fmt.Errorf("%w: failed to list vehicles: %v", ErrInternal, err)
	}

	interval := domain.Interval{StartAt: req.StartAt, EndAt: req.EndAt}

	resp := &Response{
		Vehicles: make([]VehicleResponse, 0),
	}

	for _, vehicle := range vehicles {
		if availability.IsAvailable(vehicle, interval, req.City) {
			resp.Vehicles = append(resp.Vehicles, fromDomainVehicle(vehicle, req.City))
		}
	}

	uc.logger.Info("SearchVehicles: %d of %d vehicles match", len(resp.Vehicles), len(vehicles))

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	if req.City == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidInput)
	}

	return nil
}
