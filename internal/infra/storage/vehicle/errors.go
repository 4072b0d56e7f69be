package vehicle

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("vehicle.repository: vehicle not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vehicle.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vehicle.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("vehicle.repository: failed to scan row")

	// ErrDecodePayload возвращается при ошибке декодирования JSONB-колонок
	ErrDecodePayload = errors.New("vehicle.repository: failed to decode payload")
)
