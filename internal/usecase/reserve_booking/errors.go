package reserve_booking

import "errors"

var (
	// ErrPaymentRejected возвращается, когда процессинг отклонил создание intent
	// Бронь к этому моменту уже отменена компенсирующим действием
	ErrPaymentRejected = errors.New("reserve_booking: payment intent rejected")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_booking: internal error")
)
