package paymentservice

import "errors"

var (
	// ErrIntentNotFound возвращается, когда intent не найден на стороне процессинга
	ErrIntentNotFound = errors.New("paymentservice client: intent not found")

	// ErrIntentRejected возвращается, когда процессинг отклонил создание intent
	ErrIntentRejected = errors.New("paymentservice client: intent rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")
)
