package search_vehicles

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	List(ctx context.Context) ([]*domain.Vehicle, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
