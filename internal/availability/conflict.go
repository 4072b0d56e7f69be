package availability

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// HasConflict проверяет кандидата на пересечение с существующими бронями
// одного автомобиля с учётом буферного окна вокруг каждой существующей брони.
//
// Учитываются confirmed/ongoing брони и pending-брони с неистёкшим hold
// (чтобы два одновременных checkout не прошли проверку оба).
// Разрыв ровно в bufferHours конфликтом не считается
func HasConflict(candidate domain.Interval, bufferHours int, existing []*domain.Booking, now time.Time) bool {
	return FindConflict(candidate, bufferHours, existing, now) != nil
}

// FindConflict возвращает первую блокирующую бронь, конфликтующую с кандидатом,
// либо nil, если конфликтов нет
func FindConflict(candidate domain.Interval, bufferHours int, existing []*domain.Booking, now time.Time) *domain.Booking {
	buffer := time.Duration(bufferHours) * time.Hour

	for _, booking := range existing {
		if !booking.BlocksInterval(now) {
			continue
		}
		if candidate.ConflictsWithBuffered(booking.Interval, buffer) {
			return booking
		}
	}

	return nil
}
