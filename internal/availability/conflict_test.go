package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

func booking(id int64, status domain.BookingStatus, interval domain.Interval) *domain.Booking {
	return &domain.Booking{
		ID:       id,
		Status:   status,
		Interval: interval,
	}
}

func TestHasConflict_Buffer(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// Существующая бронь: 10:00-12:00, буфер 2 часа
	existing := []*domain.Booking{
		booking(1, domain.StatusConfirmed, mkInterval(2, 10, 2, 12)),
	}

	tests := []struct {
		name      string
		candidate domain.Interval
		want      bool
	}{
		{
			name:      "direct overlap",
			candidate: mkInterval(2, 11, 2, 13),
			want:      true,
		},
		{
			name:      "gap smaller than buffer",
			candidate: mkInterval(2, 13, 2, 15), // разрыв 1ч < 2ч
			want:      true,
		},
		{
			name:      "gap exactly equal to buffer is allowed",
			candidate: mkInterval(2, 14, 2, 16), // разрыв ровно 2ч
			want:      false,
		},
		{
			name:      "gap larger than buffer",
			candidate: mkInterval(2, 15, 2, 17),
			want:      false,
		},
		{
			name:      "same rule before the existing booking",
			candidate: mkInterval(2, 6, 2, 8), // разрыв ровно 2ч до начала
			want:      false,
		},
		{
			name:      "before with gap smaller than buffer",
			candidate: mkInterval(2, 6, 2, 9), // разрыв 1ч
			want:      true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, HasConflict(tt.candidate, 2, existing, now))
		})
	}
}

func TestHasConflict_ZeroBuffer(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	existing := []*domain.Booking{
		booking(1, domain.StatusOngoing, mkInterval(2, 10, 2, 12)),
	}

	// Встык без буфера - не конфликт
	assert.False(t, HasConflict(mkInterval(2, 12, 2, 14), 0, existing, now))
	assert.False(t, HasConflict(mkInterval(2, 8, 2, 10), 0, existing, now))
	assert.True(t, HasConflict(mkInterval(2, 11, 2, 13), 0, existing, now))
}

func TestHasConflict_StatusFiltering(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	candidate := mkInterval(2, 10, 2, 12)

	t.Run("cancelled and completed do not block", func(t *testing.T) {
		existing := []*domain.Booking{
			booking(1, domain.StatusCancelled, candidate),
			booking(2, domain.StatusCompleted, candidate),
		}
		assert.False(t, HasConflict(candidate, 0, existing, now))
	})

	t.Run("pending with live hold blocks", func(t *testing.T) {
		b := booking(3, domain.StatusPending, candidate)
		b.ExpiresAt = ptr.Ptr(now.Add(10 * time.Minute))
		assert.True(t, HasConflict(candidate, 0, []*domain.Booking{b}, now))
	})

	t.Run("pending with expired hold does not block", func(t *testing.T) {
		b := booking(4, domain.StatusPending, candidate)
		b.ExpiresAt = ptr.Ptr(now.Add(-time.Minute))
		assert.False(t, HasConflict(candidate, 0, []*domain.Booking{b}, now))
	})
}

func TestFindConflict_ReturnsBlockingBooking(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	existing := []*domain.Booking{
		booking(1, domain.StatusCancelled, mkInterval(2, 10, 2, 12)),
		booking(2, domain.StatusConfirmed, mkInterval(2, 10, 2, 12)),
	}

	conflict := FindConflict(mkInterval(2, 11, 2, 13), 0, existing, now)
	if assert.NotNil(t, conflict) {
		assert.Equal(t, int64(2), conflict.ID)
	}

	assert.Nil(t, FindConflict(mkInterval(2, 14, 2, 16), 0, existing, now))
}
