package domain

// Default configuration values
const (
	DefaultHoldTTLMinutes      = 15 // время жизни неоплаченной pending-брони
	DefaultReminderLeadMinutes = 30 // окно напоминаний до выдачи/возврата
)

// Business validation constants
const (
	MinBufferTimeHours          = 0
	MaxBufferTimeHours          = 48
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы, безусловно занимающие автомобиль
// pending учитывается отдельно - только пока hold не истёк
var BlockingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusOngoing,
}

// InactiveStatuses статусы неактивных бронирований
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}

// ValidStatuses полный список статусов
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusOngoing,
	StatusCompleted,
	StatusCancelled,
}
