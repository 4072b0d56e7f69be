package get_booking_reminder

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

type ReminderService interface {
	GetForBooking(ctx context.Context, bookingID int64) (*domain.Reminder, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
