package create_booking

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	if req.DriverID != nil && *req.DriverID <= 0 {
		return fmt.Errorf("%w: driverID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	// Интервал должен быть непустым
	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	// Бронирование в прошлом не имеет смысла
	if req.StartAt.Before(now) {
		return fmt.Errorf("%w: startAt must be in the future", ErrInvalidInput)
	}

	if req.City == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidInput)
	}

	if req.Amount < 0 {
		return fmt.Errorf("%w: amount must be non-negative", ErrInvalidInput)
	}

	return nil
}
