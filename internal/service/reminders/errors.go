package reminders

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reminders service: internal error")
)
