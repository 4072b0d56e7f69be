package reserve_booking

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

// BookingCreator интерфейс создания pending-брони (атомарная проверка-и-запись)
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// BookingService интерфейс state machine бронирований
// Нужны привязка платежа и компенсирующая отмена
type BookingService interface {
	AttachPayment(ctx context.Context, bookingID int64, paymentRef string) error
	Cancel(ctx context.Context, bookingID int64, reason string) error
}

// PaymentServiceClient интерфейс клиента платежного процессинга
type PaymentServiceClient interface {
	CreateIntent(ctx context.Context, req paymentservice.CreateIntentRequest) (*paymentservice.Intent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
