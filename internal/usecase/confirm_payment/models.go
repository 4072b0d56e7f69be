package confirm_payment

// Request модель webhook-уведомления об исходе платежа
type Request struct {
	PaymentRef string // Ссылка на платежный intent
	Outcome    string // Заявленный исход: "succeeded" или "failed"
}

// Response модель результата обработки webhook
type Response struct {
	BookingID int64  // ID затронутой брони
	Status    string // Итоговый статус брони
}
