package confirm_payment

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/paymentservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByPaymentRef(ctx context.Context, paymentRef string) (*domain.Booking, error)
}

// BookingService интерфейс state machine бронирований
type BookingService interface {
	ConfirmPayment(ctx context.Context, bookingID int64) error
	Cancel(ctx context.Context, bookingID int64, reason string) error
}

// PaymentServiceClient интерфейс клиента платежного процессинга
// Webhook - только триггер: исход платежа сверяется с процессингом
type PaymentServiceClient interface {
	GetIntent(ctx context.Context, ref string) (*paymentservice.Intent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
