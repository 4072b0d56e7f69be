package paymentservice

// IntentStatus статус платежного intent на стороне процессинга
type IntentStatus string

const (
	IntentStatusPending   IntentStatus = "pending"
	IntentStatusSucceeded IntentStatus = "succeeded"
	IntentStatusFailed    IntentStatus = "failed"
)

// CreateIntentRequest запрос на создание платежного intent
type CreateIntentRequest struct {
	BookingID      int64   `json:"booking_id"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	IdempotencyKey string  `json:"idempotency_key"`
}

// Intent платежный intent внешнего процессинга
// Ядро бронирований хранит только непрозрачную ссылку Ref
type Intent struct {
	Ref          string       `json:"ref"`
	ClientSecret string       `json:"client_secret"`
	Status       IntentStatus `json:"status"`
	Amount       float64      `json:"amount"`
	Currency     string       `json:"currency"`
}

// ErrorResponse модель ошибки от платежного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
