package availability

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// IsAvailable проверяет, покрывает ли расписание автомобиля запрошенный интервал
// Функция чистая: не обращается к состоянию бронирований, безопасна для
// конкурентных и повторных вызовов (используется и в поиске, и перед созданием брони)
//
// Правила:
//   - город не обслуживается -> false (fail closed)
//   - интервал пересекает blackout-период -> false (полуоткрытое пересечение [from, to))
//   - для каждого календарного дня, которого касается интервал, день недели должен
//     присутствовать в расписании, а дневная часть интервала - лежать внутри окна.
//     Специального «ночного окна» нет: полночь - жёсткая граница
func IsAvailable(vehicle *domain.Vehicle, interval domain.Interval, city string) bool {
	if vehicle == nil || !interval.IsValid() {
		return false
	}

	if !vehicle.ServesCity(city) {
		return false
	}

	for _, blackout := range vehicle.BlackoutPeriods {
		if interval.IntersectsHalfOpen(blackout.From, blackout.To) {
			return false
		}
	}

	return scheduleCovers(vehicle.WeeklyAvailability, interval)
}

// scheduleCovers проверяет, что каждая дневная часть интервала лежит
// внутри окна соответствующего дня недели (границы включительно)
func scheduleCovers(schedule domain.WeeklySchedule, interval domain.Interval) bool {
	day := startOfDay(interval.StartAt)

	for day.Before(interval.EndAt) {
		nextDay := day.AddDate(0, 0, 1)

		portionStart := maxTime(interval.StartAt, day)
		portionEnd := minTime(interval.EndAt, nextDay)

		// Пустая часть дня (интервал кончается ровно в полночь) не проверяется
		if portionEnd.After(portionStart) {
			window, ok := schedule.WindowFor(day.Weekday())
			if !ok {
				return false
			}

			startMin := minutesIntoDay(portionStart, day)
			endMin := minutesIntoDay(portionEnd, day)

			if startMin < window.StartTime.Minutes() || endMin > windowEndMinutes(window) {
				return false
			}
		}

		day = nextDay
	}

	return true
}

// windowEndMinutes возвращает конец окна в минутах от начала суток
// EndTime "00:00" трактуется как конец суток (полночь следующего дня)
func windowEndMinutes(window domain.DayWindow) int {
	minutes := window.EndTime.Minutes()
	if minutes == 0 {
		return 24 * 60
	}
	return minutes
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func minutesIntoDay(t time.Time, day time.Time) int {
	return int(t.Sub(day) / time.Minute)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
