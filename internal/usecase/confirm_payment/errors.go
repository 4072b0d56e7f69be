package confirm_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронь по платежной ссылке не найдена
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrIntentNotFound возвращается, когда intent не найден на стороне процессинга
	ErrIntentNotFound = errors.New("confirm_payment: payment intent not found")

	// ErrOutcomeMismatch возвращается, когда заявленный в webhook исход
	// не совпадает с состоянием intent на стороне процессинга
	ErrOutcomeMismatch = errors.New("confirm_payment: webhook outcome does not match intent status")

	// ErrHoldExpired возвращается, когда hold брони истёк до подтверждения
	// Вызывающий обязан инициировать возврат средств
	ErrHoldExpired = errors.New("confirm_payment: booking hold expired, refund required")

	// ErrIntentStillPending возвращается, когда intent ещё не получил
	// финальный статус - webhook пришёл раньше времени
	ErrIntentStillPending = errors.New("confirm_payment: payment intent is still pending")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
