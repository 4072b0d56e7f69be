package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	t.Parallel()

	valid := []string{"00:00", "08:30", "23:59"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"", "24:00", "8:30:00", "12-30", "abc"}
	for _, s := range invalid {
		assert.ErrorIs(t, TimeString(s).Validate(), ErrInvalidTimeString, s)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 510, TimeString("08:30").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())
	assert.Equal(t, 0, TimeString("garbage").Minutes())
}

func TestTimeString_Compare(t *testing.T) {
	t.Parallel()

	assert.True(t, TimeString("08:00").IsBefore("20:00"))
	assert.False(t, TimeString("20:00").IsBefore("08:00"))
	assert.True(t, TimeString("20:00").IsAfter("08:00"))
	assert.False(t, TimeString("08:00").IsAfter("08:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Parallel()

	got, err := TimeString("08:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), got)

	got, err = TimeString("10:00").AddMinutes(-60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), got)

	// Ровно полночь следующего дня сводится к 23:59
	got, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:59"), got)

	_, err = TimeString("23:00").AddMinutes(120)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	t.Parallel()

	var ts TimeString

	require.NoError(t, ts.Scan("08:30"))
	assert.Equal(t, TimeString("08:30"), ts)

	// Колонки TIME приходят с секундами
	require.NoError(t, ts.Scan("20:15:00"))
	assert.Equal(t, TimeString("20:15"), ts)

	require.NoError(t, ts.Scan([]byte("09:45")))
	assert.Equal(t, TimeString("09:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 6, 2, 14, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.ErrorIs(t, ts.Scan(42), ErrInvalidTimeString)
	assert.ErrorIs(t, ts.Scan("25:00"), ErrInvalidTimeString)
}

func TestTimeString_Value(t *testing.T) {
	t.Parallel()

	v, err := TimeString("08:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
