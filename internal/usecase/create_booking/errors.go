package create_booking

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("create_booking: vehicle not found")

	// ErrVehicleNotAvailable возвращается, когда расписание, blackout-период
	// или география автомобиля не покрывают запрошенный интервал
	ErrVehicleNotAvailable = errors.New("create_booking: vehicle is not available for this interval")

	// ErrBookingConflict возвращается, когда интервал с учётом буфера
	// пересекается с существующей активной бронью
	ErrBookingConflict = errors.New("create_booking: interval conflicts with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
