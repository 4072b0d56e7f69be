package domain

import "time"

// ReminderKind вид напоминания
type ReminderKind string

const (
	// ReminderUpcomingDelivery скоро выдача автомобиля (confirmed, до начала <= lead)
	ReminderUpcomingDelivery ReminderKind = "upcoming_delivery"

	// ReminderUpcomingReturn скоро возврат автомобиля (ongoing, до конца <= lead)
	ReminderUpcomingReturn ReminderKind = "upcoming_return"

	// ReminderOverdueReturn возврат просрочен (ongoing, конец в прошлом)
	ReminderOverdueReturn ReminderKind = "overdue_return"
)

// Reminder напоминание, производное от статуса брони и текущего времени
// Не хранится: пересчитывается на каждое обращение
type Reminder struct {
	Kind      ReminderKind
	BookingID int64
	DueAt     time.Time // момент выдачи или возврата, к которому привязано напоминание
}
