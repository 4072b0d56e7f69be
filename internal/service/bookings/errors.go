package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrVehicleNotFound возвращается, когда автомобиль брони не найден
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrHoldExpired возвращается, когда hold неоплаченной брони истёк
	// При подтверждении оплаты это сигнал вызывающему инициировать возврат средств:
	// деньги захвачены за бронь, которая автомобиль уже не держит
	ErrHoldExpired = errors.New("booking hold expired")

	// ErrPaymentNotAttached возвращается при подтверждении брони без платежной ссылки
	ErrPaymentNotAttached = errors.New("booking has no payment reference")

	// ErrInvalidState возвращается при переходе из состояния, которое его не допускает
	ErrInvalidState = errors.New("operation is not allowed in current booking state")

	// ErrCannotCancel возвращается, когда бронь нельзя отменить из её состояния
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCancellationWindowExpired возвращается, когда окно отмены уже закрыто
	ErrCancellationWindowExpired = errors.New("cancellation window expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
