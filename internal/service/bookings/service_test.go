package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// --- fakes ---

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeBookingRepo повторяет семантику условных обновлений репозитория:
// переход из неожидаемого статуса возвращает ErrStaleTransition
type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		copied := *b
		repo.bookings[b.ID] = &copied
	}
	return repo
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByPaymentRef(_ context.Context, paymentRef string) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.PaymentRef != nil && *b.PaymentRef == paymentRef {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeBookingRepo) GetByCompanyWithFilter(_ context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeBookingRepo) AttachPayment(_ context.Context, id int64, paymentRef string, now time.Time) error {
	b, ok := r.bookings[id]
	if !ok || b.Status != domain.StatusPending || b.ExpiresAt == nil || !b.ExpiresAt.After(now) {
		return bookingRepo.ErrStaleTransition
	}
	b.PaymentRef = &paymentRef
	b.UpdatedAt = now
	return nil
}

func (r *fakeBookingRepo) Confirm(_ context.Context, id int64, now time.Time) error {
	b, ok := r.bookings[id]
	if !ok || b.Status != domain.StatusPending {
		return bookingRepo.ErrStaleTransition
	}
	b.Status = domain.StatusConfirmed
	b.ExpiresAt = nil
	b.UpdatedAt = now
	return nil
}

func (r *fakeBookingRepo) MarkOngoing(_ context.Context, id int64, handoverAt time.Time, now time.Time) error {
	b, ok := r.bookings[id]
	if !ok || b.Status != domain.StatusConfirmed {
		return bookingRepo.ErrStaleTransition
	}
	b.Status = domain.StatusOngoing
	b.HandoverAt = &handoverAt
	b.UpdatedAt = now
	return nil
}

func (r *fakeBookingRepo) Complete(_ context.Context, id int64, now time.Time) error {
	b, ok := r.bookings[id]
	if !ok || b.Status != domain.StatusOngoing {
		return bookingRepo.ErrStaleTransition
	}
	b.Status = domain.StatusCompleted
	b.UpdatedAt = now
	return nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string, now time.Time) error {
	b, ok := r.bookings[id]
	if !ok || (b.Status != domain.StatusPending && b.Status != domain.StatusConfirmed) {
		return bookingRepo.ErrStaleTransition
	}
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now
	b.ExpiresAt = nil
	b.UpdatedAt = now
	return nil
}

func (r *fakeBookingRepo) ExpireStalePending(_ context.Context, now time.Time) (int64, error) {
	var expired int64
	for _, b := range r.bookings {
		if b.Status == domain.StatusPending && b.ExpiresAt != nil && !b.ExpiresAt.After(now) {
			b.Status = domain.StatusCancelled
			b.ExpiresAt = nil
			expired++
		}
	}
	return expired, nil
}

type fakeVehicleRepo struct {
	vehicles map[int64]*domain.Vehicle
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, vehicleRepo.ErrVehicleNotFound
	}
	return v, nil
}

// --- helpers ---

var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeBookingRepo, vehicles map[int64]*domain.Vehicle) *Service {
	if vehicles == nil {
		vehicles = map[int64]*domain.Vehicle{}
	}
	svc := NewService(repo, &fakeVehicleRepo{vehicles: vehicles}, nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}
	return svc
}

func pendingBooking(id int64, expiresAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		VehicleID: 1,
		UserID:    100,
		CompanyID: 10,
		Interval: domain.Interval{
			StartAt: testNow.Add(48 * time.Hour),
			EndAt:   testNow.Add(52 * time.Hour),
		},
		Status:    domain.StatusPending,
		ExpiresAt: &expiresAt,
	}
}

func confirmedBooking(id int64, startIn time.Duration) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		VehicleID: 1,
		UserID:    100,
		CompanyID: 10,
		Interval: domain.Interval{
			StartAt: testNow.Add(startIn),
			EndAt:   testNow.Add(startIn + 4*time.Hour),
		},
		Status:     domain.StatusConfirmed,
		PaymentRef: ptr.Ptr("pi_test"),
	}
}

// --- ConfirmPayment ---

func TestService_ConfirmPayment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("confirms pending booking with live hold", func(t *testing.T) {
		t.Parallel()
		b := pendingBooking(1, testNow.Add(10*time.Minute))
		b.PaymentRef = ptr.Ptr("pi_1")
		repo := newFakeBookingRepo(b)
		svc := newTestService(repo, nil)

		require.NoError(t, svc.ConfirmPayment(ctx, 1))

		stored := repo.bookings[1]
		assert.Equal(t, domain.StatusConfirmed, stored.Status)
		assert.Nil(t, stored.ExpiresAt)
	})

	t.Run("idempotent for already confirmed booking", func(t *testing.T) {
		t.Parallel()
		repo := newFakeBookingRepo(confirmedBooking(1, 48*time.Hour))
		svc := newTestService(repo, nil)

		require.NoError(t, svc.ConfirmPayment(ctx, 1))
		require.NoError(t, svc.ConfirmPayment(ctx, 1))
	})

	t.Run("expired hold requires refund", func(t *testing.T) {
		t.Parallel()
		b := pendingBooking(1, testNow.Add(-time.Minute))
		b.PaymentRef = ptr.Ptr("pi_1")
		repo := newFakeBookingRepo(b)
		svc := newTestService(repo, nil)

		err := svc.ConfirmPayment(ctx, 1)
		assert.ErrorIs(t, err, ErrHoldExpired)
		// Бронь не воскресает
		assert.Equal(t, domain.StatusPending, repo.bookings[1].Status)
	})

	t.Run("cancelled booking requires refund", func(t *testing.T) {
		t.Parallel()
		b := pendingBooking(1, testNow.Add(10*time.Minute))
		b.Status = domain.StatusCancelled
		b.ExpiresAt = nil
		repo := newFakeBookingRepo(b)
		svc := newTestService(repo, nil)

		assert.ErrorIs(t, svc.ConfirmPayment(ctx, 1), ErrHoldExpired)
	})

	t.Run("no payment ref attached", func(t *testing.T) {
		t.Parallel()
		repo := newFakeBookingRepo(pendingBooking(1, testNow.Add(10*time.Minute)))
		svc := newTestService(repo, nil)

		assert.ErrorIs(t, svc.ConfirmPayment(ctx, 1), ErrPaymentNotAttached)
	})

	t.Run("out-of-order confirmation", func(t *testing.T) {
		t.Parallel()
		b := confirmedBooking(1, -time.Hour)
		b.Status = domain.StatusOngoing
		repo := newFakeBookingRepo(b)
		svc := newTestService(repo, nil)

		assert.ErrorIs(t, svc.ConfirmPayment(ctx, 1), ErrInvalidState)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(newFakeBookingRepo(), nil)
		assert.ErrorIs(t, svc.ConfirmPayment(ctx, 42), ErrBookingNotFound)
	})
}

// --- AttachPayment ---

func TestService_AttachPayment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("attaches ref to pending booking", func(t *testing.T) {
		t.Parallel()
		repo := newFakeBookingRepo(pendingBooking(1, testNow.Add(10*time.Minute)))
		svc := newTestService(repo, nil)

		require.NoError(t, svc.AttachPayment(ctx, 1, "pi_new"))
		require.NotNil(t, repo.bookings[1].PaymentRef)
		assert.Equal(t, "pi_new", *repo.bookings[1].PaymentRef)
	})

	t.Run("expired hold", func(t *testing.T) {
		t.Parallel()
		repo := newFakeBookingRepo(pendingBooking(1, testNow.Add(-time.Minute)))
		svc := newTestService(repo, nil)

		assert.ErrorIs(t, svc.AttachPayment(ctx, 1, "pi_new"), ErrHoldExpired)
	})

	t.Run("non-pending booking", func(t *testing.T) {
		t.Parallel()
		repo := newFakeBookingRepo(confirmedBooking(1, 48*time.Hour))
		svc := newTestService(repo, nil)

		assert.ErrorIs(t, svc.AttachPayment(ctx, 1, "pi_new"), ErrInvalidState)
	})

	t.Run("empty ref", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(newFakeBookingRepo(), nil)
		assert.ErrorIs(t, svc.AttachPayment(ctx, 1, ""), ErrInvalidInput)
	})
}

// --- Handover / Complete ---

func TestService_Handover(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("marks confirmed booking ongoing", func(t *testing.T) {
		t.Parallel()
		b := confirmedBooking(1, -time.Hour) // аренда уже началась
		repo := newFakeBookingRepo(b)
		svc := newTestService(repo, nil)

		require.NoError(t, svc.Handover(ctx, 1, testNow))

		stored := repo.bookings[1]
		assert.Equal(t, domain.StatusOngoing, stored.Status)
		require.NotNil(t, stored.HandoverAt)
		assert.Equal(t, testNow, *stored.HandoverAt)
	})

	t.Run("handover before interval start is rejected", func(t *testing.T) {
		t.Parallel()
		repo := newFakeBookingRepo(confirmedBooking(1, 48*time.Hour))
		svc := newTestService(repo, nil)

		err := svc.Handover(ctx, 1, testNow)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	})

	t.Run("handover of pending booking is rejected", func(t *testing.T) {
		t.Parallel()
		repo := newFakeBookingRepo(pendingBooking(1, testNow.Add(10*time.Minute)))
		svc := newTestService(repo, nil)

		assert.ErrorIs(t, svc.Handover(ctx, 1, testNow), ErrInvalidState)
	})
}

func TestService_Complete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("completes ongoing booking", func(t *testing.T) {
		t.Parallel()
		b := confirmedBooking(1, -5*time.Hour)
		b.Status = domain.StatusOngoing
		repo := newFakeBookingRepo(b)
		svc := newTestService(repo, nil)

		require.NoError(t, svc.Complete(ctx, 1))
		assert.Equal(t, domain.StatusCompleted, repo.bookings[1].Status)
	})

	t.Run("completing confirmed booking is rejected", func(t *testing.T) {
		t.Parallel()
		repo := newFakeBookingRepo(confirmedBooking(1, 48*time.Hour))
		svc := newTestService(repo, nil)

		assert.ErrorIs(t, svc.Complete(ctx, 1), ErrInvalidState)
	})
}

// --- Cancel ---

func TestService_Cancel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	vehicleWith24hWindow := map[int64]*domain.Vehicle{
		1: {ID: 1, CompanyID: 10, CancellationWindowHours: 24},
	}

	t.Run("pending booking cancels without window check", func(t *testing.T) {
		t.Parallel()
		repo := newFakeBookingRepo(pendingBooking(1, testNow.Add(10*time.Minute)))
		svc := newTestService(repo, nil)

		require.NoError(t, svc.Cancel(ctx, 1, "передумал"))

		stored := repo.bookings[1]
		assert.Equal(t, domain.StatusCancelled, stored.Status)
		require.NotNil(t, stored.CancellationReason)
		assert.Equal(t, "передумал", *stored.CancellationReason)
		require.NotNil(t, stored.CancelledAt)
	})

	t.Run("confirmed booking cancels while window is open", func(t *testing.T) {
		t.Parallel()
		// Начало через 48ч, окно 24ч - отменять ещё можно
		repo := newFakeBookingRepo(confirmedBooking(1, 48*time.Hour))
		svc := newTestService(repo, vehicleWith24hWindow)

		require.NoError(t, svc.Cancel(ctx, 1, ""))
		assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	})

	t.Run("confirmed booking past the window is rejected", func(t *testing.T) {
		t.Parallel()
		// Начало через 12ч, окно 24ч - уже поздно
		repo := newFakeBookingRepo(confirmedBooking(1, 12*time.Hour))
		svc := newTestService(repo, vehicleWith24hWindow)

		err := svc.Cancel(ctx, 1, "")
		assert.ErrorIs(t, err, ErrCancellationWindowExpired)
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	})

	t.Run("terminal booking cannot be cancelled", func(t *testing.T) {
		t.Parallel()
		b := confirmedBooking(1, -10*time.Hour)
		b.Status = domain.StatusCompleted
		repo := newFakeBookingRepo(b)
		svc := newTestService(repo, nil)

		assert.ErrorIs(t, svc.Cancel(ctx, 1, ""), ErrCannotCancel)
	})
}

// --- Read ops / lazy expiry ---

func TestService_GetByID_LazyExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("expired pending booking reported as cancelled", func(t *testing.T) {
		t.Parallel()
		repo := newFakeBookingRepo(pendingBooking(1, testNow.Add(-time.Minute)))
		svc := newTestService(repo, nil)

		result, err := svc.GetByID(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), result.Status)
		assert.Nil(t, result.ExpiresAt)
		// Хранимый статус при этом не изменился
		assert.Equal(t, domain.StatusPending, repo.bookings[1].Status)
	})

	t.Run("live pending booking keeps status and hold", func(t *testing.T) {
		t.Parallel()
		repo := newFakeBookingRepo(pendingBooking(1, testNow.Add(10*time.Minute)))
		svc := newTestService(repo, nil)

		result, err := svc.GetByID(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusPending), result.Status)
		assert.NotNil(t, result.ExpiresAt)
	})
}

func TestService_GetUserBookings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b1 := pendingBooking(1, testNow.Add(10*time.Minute))
	b2 := confirmedBooking(2, 48*time.Hour)
	other := confirmedBooking(3, 48*time.Hour)
	other.UserID = 200

	repo := newFakeBookingRepo(b1, b2, other)
	svc := newTestService(repo, nil)

	t.Run("all bookings of the user", func(t *testing.T) {
		result, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: 100})
		require.NoError(t, err)
		assert.Len(t, result.Bookings, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		status := "confirmed"
		result, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: 100, Status: &status})
		require.NoError(t, err)
		require.Len(t, result.Bookings, 1)
		assert.Equal(t, int64(2), result.Bookings[0].ID)
	})

	t.Run("invalid status", func(t *testing.T) {
		status := "unknown"
		_, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: 100, Status: &status})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

// --- ExpireStalePending ---

func TestService_ExpireStalePending(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stale := pendingBooking(1, testNow.Add(-time.Minute))
	live := pendingBooking(2, testNow.Add(10*time.Minute))
	repo := newFakeBookingRepo(stale, live)
	svc := newTestService(repo, nil)

	expired, err := svc.ExpireStalePending(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), expired)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	assert.Equal(t, domain.StatusPending, repo.bookings[2].Status)
}
