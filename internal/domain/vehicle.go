package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// DayWindow окно доступности автомобиля в пределах одного дня недели
type DayWindow struct {
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// WeeklySchedule недельное расписание доступности
// Ключи - дни недели в нижнем регистре ("monday" ... "sunday");
// отсутствие дня означает, что автомобиль в этот день не выдается
type WeeklySchedule map[string]DayWindow

// weekdayKeys соответствие time.Weekday ключам расписания
var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// WindowFor возвращает окно доступности для дня недели
func (s WeeklySchedule) WindowFor(day time.Weekday) (DayWindow, bool) {
	window, ok := s[weekdayKeys[day]]
	return window, ok
}

// BlackoutPeriod период, в который автомобиль недоступен независимо от расписания
// Интервал полуоткрытый: [From, To)
type BlackoutPeriod struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Reason string    `json:"reason"`
}

// ServiceCity город обслуживания с дополнительной платой за подачу
type ServiceCity struct {
	Name     string  `json:"name"`
	ExtraFee float64 `json:"extraFee"`
}

// Vehicle автомобиль прокатной компании
// Ядро бронирований читает записи автомобилей, но не изменяет их
type Vehicle struct {
	ID        int64
	CompanyID int64

	Brand        string
	Model        string
	LicensePlate string

	WeeklyAvailability WeeklySchedule
	BlackoutPeriods    []BlackoutPeriod
	Cities             []ServiceCity

	// BufferTimeHours минимальный технологический разрыв до и после брони
	BufferTimeHours int

	// CancellationWindowHours за сколько часов до начала отмена ещё разрешена
	CancellationWindowHours int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServesCity возвращает true, если автомобиль обслуживает указанный город
func (v *Vehicle) ServesCity(city string) bool {
	for _, c := range v.Cities {
		if strings.EqualFold(c.Name, city) {
			return true
		}
	}
	return false
}

// CityFee возвращает дополнительную плату за подачу в указанном городе
func (v *Vehicle) CityFee(city string) (float64, bool) {
	for _, c := range v.Cities {
		if strings.EqualFold(c.Name, city) {
			return c.ExtraFee, true
		}
	}
	return 0, false
}

// BufferDuration возвращает буферное время как time.Duration
func (v *Vehicle) BufferDuration() time.Duration {
	return time.Duration(v.BufferTimeHours) * time.Hour
}

// CancellationWindow возвращает окно отмены как time.Duration
func (v *Vehicle) CancellationWindow() time.Duration {
	return time.Duration(v.CancellationWindowHours) * time.Hour
}
