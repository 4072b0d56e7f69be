package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Расписание: ежедневно 08:00-20:00, обслуживается Москва
func testVehicle() *domain.Vehicle {
	window := domain.DayWindow{StartTime: "08:00", EndTime: "20:00"}

	return &domain.Vehicle{
		ID:        1,
		CompanyID: 10,
		WeeklyAvailability: domain.WeeklySchedule{
			"monday":    window,
			"tuesday":   window,
			"wednesday": window,
			"thursday":  window,
			"friday":    window,
			"saturday":  window,
			"sunday":    window,
		},
		Cities: []domain.ServiceCity{
			{Name: "Москва", ExtraFee: 0},
			{Name: "Казань", ExtraFee: 500},
		},
	}
}

// 2025-06-02 - понедельник
func mkTime(day, hour, minute int) time.Time {
	return time.Date(2025, 6, day, hour, minute, 0, 0, time.UTC)
}

func mkInterval(startDay, startHour, endDay, endHour int) domain.Interval {
	return domain.Interval{
		StartAt: mkTime(startDay, startHour, 0),
		EndAt:   mkTime(endDay, endHour, 0),
	}
}

func TestIsAvailable_Schedule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		interval domain.Interval
		want     bool
	}{
		{
			name:     "interval inside window",
			interval: mkInterval(2, 10, 2, 18),
			want:     true,
		},
		{
			name:     "interval exactly matches window boundaries",
			interval: mkInterval(2, 8, 2, 20),
			want:     true,
		},
		{
			name:     "starts before window opens",
			interval: mkInterval(2, 7, 2, 12),
			want:     false,
		},
		{
			name:     "ends after window closes",
			interval: mkInterval(2, 12, 2, 21),
			want:     false,
		},
		{
			name:     "multi-day rental fails hard midnight cutoff",
			interval: mkInterval(2, 10, 3, 18),
			want:     false,
		},
		{
			name:     "interval ending exactly at midnight checks only first day",
			interval: domain.Interval{StartAt: mkTime(2, 22, 0), EndAt: mkTime(3, 0, 0)},
			want:     false, // 22:00-24:00 вне окна 08:00-20:00
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsAvailable(testVehicle(), tt.interval, "Москва"))
		})
	}
}

func TestIsAvailable_MissingWeekday(t *testing.T) {
	t.Parallel()

	vehicle := testVehicle()
	// Вторник выключен из расписания
	delete(vehicle.WeeklyAvailability, "tuesday")

	// Понедельник доступен
	assert.True(t, IsAvailable(vehicle, mkInterval(2, 10, 2, 12), "Москва"))
	// Вторник - нет
	assert.False(t, IsAvailable(vehicle, mkInterval(3, 10, 3, 12), "Москва"))
}

func TestIsAvailable_FullDayWindow(t *testing.T) {
	t.Parallel()

	vehicle := testVehicle()
	// EndTime "00:00" трактуется как конец суток: многодневная аренда возможна
	full := domain.DayWindow{StartTime: "00:00", EndTime: "00:00"}
	for day := range vehicle.WeeklyAvailability {
		vehicle.WeeklyAvailability[day] = full
	}

	assert.True(t, IsAvailable(vehicle, mkInterval(2, 10, 5, 18), "Москва"))
}

func TestIsAvailable_Blackouts(t *testing.T) {
	t.Parallel()

	vehicle := testVehicle()
	vehicle.BlackoutPeriods = []domain.BlackoutPeriod{
		{From: mkTime(2, 12, 0), To: mkTime(2, 14, 0), Reason: "ТО"},
	}

	tests := []struct {
		name     string
		interval domain.Interval
		want     bool
	}{
		{
			name:     "overlaps blackout",
			interval: mkInterval(2, 11, 2, 13),
			want:     false,
		},
		{
			name:     "inside blackout",
			interval: domain.Interval{StartAt: mkTime(2, 12, 30), EndAt: mkTime(2, 13, 30)},
			want:     false,
		},
		{
			name:     "ends exactly at blackout start (half-open)",
			interval: mkInterval(2, 10, 2, 12),
			want:     true,
		},
		{
			name:     "starts exactly at blackout end (half-open)",
			interval: mkInterval(2, 14, 2, 16),
			want:     true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsAvailable(vehicle, tt.interval, "Москва"))
		})
	}
}

func TestIsAvailable_City(t *testing.T) {
	t.Parallel()

	vehicle := testVehicle()
	interval := mkInterval(2, 10, 2, 12)

	// Город не из списка - fail closed
	assert.False(t, IsAvailable(vehicle, interval, "Новосибирск"))
	assert.False(t, IsAvailable(vehicle, interval, ""))

	// Сравнение без учета регистра
	assert.True(t, IsAvailable(vehicle, interval, "москва"))
	assert.True(t, IsAvailable(vehicle, interval, "КАЗАНЬ"))
}

func TestIsAvailable_InvalidInput(t *testing.T) {
	t.Parallel()

	assert.False(t, IsAvailable(nil, mkInterval(2, 10, 2, 12), "Москва"))

	// Пустой и перевернутый интервалы
	assert.False(t, IsAvailable(testVehicle(), domain.Interval{}, "Москва"))
	assert.False(t, IsAvailable(testVehicle(), mkInterval(2, 12, 2, 10), "Москва"))
}
