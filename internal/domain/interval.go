package domain

import "time"

// Interval канонический интервал бронирования [StartAt, EndAt)
// Оба значения - мгновения в UTC, собранные из даты и локального времени
type Interval struct {
	StartAt time.Time
	EndAt   time.Time
}

// IsValid returns true if the interval is non-empty
func (i Interval) IsValid() bool {
	return !i.StartAt.IsZero() && !i.EndAt.IsZero() && i.EndAt.After(i.StartAt)
}

// Duration возвращает длительность интервала
func (i Interval) Duration() time.Duration {
	return i.EndAt.Sub(i.StartAt)
}

// IntersectsHalfOpen проверяет пересечение двух полуоткрытых интервалов
// [i.StartAt, i.EndAt) и [from, to); соприкосновение границ пересечением не считается
func (i Interval) IntersectsHalfOpen(from, to time.Time) bool {
	return i.StartAt.Before(to) && from.Before(i.EndAt)
}

// ConflictsWithBuffered проверяет конфликт кандидата с существующей бронью
// с учётом буферного окна вокруг существующей брони:
//
//	candidate.start < other.end + buffer  И  candidate.end + buffer > other.start
//
// Неравенства строгие: разрыв ровно в buffer конфликтом не считается
func (i Interval) ConflictsWithBuffered(other Interval, buffer time.Duration) bool {
	return i.StartAt.Before(other.EndAt.Add(buffer)) && i.EndAt.Add(buffer).After(other.StartAt)
}
