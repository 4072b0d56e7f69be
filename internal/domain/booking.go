package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusOngoing   BookingStatus = "ongoing"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a vehicle reservation in the system
// Statuses move strictly along pending -> confirmed -> ongoing -> completed,
// with cancelled reachable from pending and confirmed
type Booking struct {
	ID        int64
	VehicleID int64
	UserID    int64
	CompanyID int64
	DriverID  *int64

	Interval  Interval
	City      string
	Intercity bool

	Status BookingStatus
	Amount float64

	// PaymentRef opaque reference of the external payment intent,
	// nil until the intent is created
	PaymentRef *string

	// HandoverAt set when the vehicle is physically released (status -> ongoing)
	HandoverAt *time.Time

	// ExpiresAt set only while the booking is pending and unpaid
	ExpiresAt *time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the booking reached a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking status permits cancellation
// The cancellation window of confirmed bookings is checked separately
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// HoldExpired возвращает true, если бронь pending и её hold истёк
// Просроченные pending-брони трактуются читателями как отмененные (lazy expiry)
func (b *Booking) HoldExpired(now time.Time) bool {
	return b.Status == StatusPending && b.ExpiresAt != nil && now.After(*b.ExpiresAt)
}

// BlocksInterval возвращает true, если бронь занимает автомобиль
// и должна учитываться при проверке пересечений:
// confirmed/ongoing всегда, pending - только пока hold не истёк
func (b *Booking) BlocksInterval(now time.Time) bool {
	switch b.Status {
	case StatusConfirmed, StatusOngoing:
		return true
	case StatusPending:
		return b.ExpiresAt != nil && b.ExpiresAt.After(now)
	default:
		return false
	}
}

// EffectiveStatus возвращает статус с учётом lazy expiry:
// просроченная pending-бронь отдается как cancelled, даже если
// фоновая уборка до неё ещё не дошла
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.HoldExpired(now) {
		return StatusCancelled
	}
	return b.Status
}

// UserBookingsFilter фильтр для получения бронирований пользователя
type UserBookingsFilter struct {
	UserID int64
	Status *BookingStatus
}

// CompanyBookingsFilter фильтр для получения бронирований компании
type CompanyBookingsFilter struct {
	CompanyID       int64          // Обязательный параметр
	VehicleID       *int64         // Фильтр по автомобилю (опционально)
	StartAfter      *time.Time     // Начало периода (опционально)
	StartBefore     *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и завершенные брони
}
