package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPaymentRef(ctx context.Context, paymentRef string) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByCompanyWithFilter(ctx context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error)
	AttachPayment(ctx context.Context, id int64, paymentRef string, now time.Time) error
	Confirm(ctx context.Context, id int64, now time.Time) error
	MarkOngoing(ctx context.Context, id int64, handoverAt time.Time, now time.Time) error
	Complete(ctx context.Context, id int64, now time.Time) error
	Cancel(ctx context.Context, id int64, reason string, now time.Time) error
	ExpireStalePending(ctx context.Context, now time.Time) (int64, error)
}

// VehicleRepository интерфейс репозитория автомобилей
// Нужен state machine только ради окна отмены
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
