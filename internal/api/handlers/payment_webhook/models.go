package payment_webhook

import (
	confirmPayment "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_payment"
)

// PaymentWebhookRequest HTTP request model
// Формат уведомления платежного процессинга
type PaymentWebhookRequest struct {
	PaymentRef string `json:"paymentRef"`
	Outcome    string `json:"outcome"` // "succeeded" | "failed"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PaymentWebhookRequest) ToUseCaseRequest() *confirmPayment.Request {
	return &confirmPayment.Request{
		PaymentRef: r.PaymentRef,
		Outcome:    r.Outcome,
	}
}

// PaymentWebhookResponse HTTP response model
type PaymentWebhookResponse struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
}
