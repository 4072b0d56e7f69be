package vehicle

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения автомобилей
// Ядро бронирований не изменяет записи автомобилей, поэтому
// репозиторий предоставляет только операции чтения
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория автомобилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var vehicleColumns = []string{
	"id",
	"company_id",
	"brand",
	"model",
	"license_plate",
	"weekly_availability",
	"blackout_periods",
	"cities",
	"buffer_time_hours",
	"cancellation_window_hours",
	"created_at",
	"updated_at",
}

// GetByID получает автомобиль по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает автомобиль по ID с блокировкой строки (FOR UPDATE)
// Используется в транзакции создания брони как точка взаимного исключения
// на множество бронирований одного автомобиля
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(vehicleColumns...).
		From("vehicles").
		Where(squirrel.Eq{"id": id})

	// FOR UPDATE имеет смысл только внутри транзакции
	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	vehicle, err := scanVehicle(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}

	return vehicle, nil
}

// List возвращает все автомобили
// Используется поисковой выдачей: фильтрация по расписанию и городу
// выполняется в usecase чистым матчером
func (r *Repository) List(ctx context.Context) ([]*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(vehicleColumns...).
		From("vehicles").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0)
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return vehicles, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanVehicle сканирует строку результата в доменную модель
// JSONB-колонки приходят как []byte и декодируются отдельно
func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var (
		vehicle       domain.Vehicle
		weeklyRaw     []byte
		blackoutsRaw  []byte
		citiesRaw     []byte
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&vehicle.ID,
		&vehicle.CompanyID,
		&vehicle.Brand,
		&vehicle.Model,
		&vehicle.LicensePlate,
		&weeklyRaw,
		&blackoutsRaw,
		&citiesRaw,
		&vehicle.BufferTimeHours,
		&vehicle.CancellationWindowHours,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanVehicle - scan row: %v", ErrScanRow, err)
	}

	if len(weeklyRaw) > 0 {
		if err := json.Unmarshal(weeklyRaw, &vehicle.WeeklyAvailability); err != nil {
			return nil, fmt.Errorf("%w: scanVehicle - weekly_availability: %v", ErrDecodePayload, err)
		}
	}
	if len(blackoutsRaw) > 0 {
		if err := json.Unmarshal(blackoutsRaw, &vehicle.BlackoutPeriods); err != nil {
			return nil, fmt.Errorf("%w: scanVehicle - blackout_periods: %v", ErrDecodePayload, err)
		}
	}
	if len(citiesRaw) > 0 {
		if err := json.Unmarshal(citiesRaw, &vehicle.Cities); err != nil {
			return nil, fmt.Errorf("%w: scanVehicle - cities: %v", ErrDecodePayload, err)
		}
	}

	vehicle.CreatedAt = createdAt.Time
	vehicle.UpdatedAt = updatedAt.Time

	return &vehicle, nil
}
