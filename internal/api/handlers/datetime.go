package handlers

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// ParseDateTime собирает UTC-мгновение из пары дата + время
// ("2025-06-01", "10:30"). Все интервалы каноникализируются на границе API,
// дальше по стеку ходят только time.Time в UTC
func ParseDateTime(dateStr, timeStr string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", dateStr)
	}

	ts, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", timeStr)
	}

	minutes := ts.Minutes()

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0,
		time.UTC,
	), nil
}
