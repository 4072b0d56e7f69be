package handover_booking

import (
	"context"
	"time"
)

type BookingService interface {
	Handover(ctx context.Context, bookingID int64, at time.Time) error
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
