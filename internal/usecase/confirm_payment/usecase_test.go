package confirm_payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// --- fakes ---

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	booking *domain.Booking
}

func (f *fakeBookingRepo) GetByPaymentRef(_ context.Context, paymentRef string) (*domain.Booking, error) {
	if f.booking == nil || f.booking.PaymentRef == nil || *f.booking.PaymentRef != paymentRef {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

type fakeBookingService struct {
	confirmed  []int64
	cancelled  []int64
	confirmErr error
	cancelErr  error
}

func (f *fakeBookingService) ConfirmPayment(_ context.Context, bookingID int64) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmed = append(f.confirmed, bookingID)
	return nil
}

func (f *fakeBookingService) Cancel(_ context.Context, bookingID int64, _ string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, bookingID)
	return nil
}

type fakePaymentClient struct {
	intent *paymentservice.Intent
	err    error
}

func (f *fakePaymentClient) GetIntent(_ context.Context, _ string) (*paymentservice.Intent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.intent, nil
}

// --- helpers ---

func pendingBookingWithRef(ref string) *domain.Booking {
	return &domain.Booking{
		ID:         7,
		Status:     domain.StatusPending,
		PaymentRef: ptr.Ptr(ref),
	}
}

func intentWith(status paymentservice.IntentStatus) *paymentservice.Intent {
	return &paymentservice.Intent{Ref: "pi_7", Status: status}
}

// --- tests ---

func TestUseCase_Execute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("confirms booking on verified success", func(t *testing.T) {
		t.Parallel()
		svc := &fakeBookingService{}
		uc := NewUseCase(
			&fakeBookingRepo{booking: pendingBookingWithRef("pi_7")},
			svc,
			&fakePaymentClient{intent: intentWith(paymentservice.IntentStatusSucceeded)},
			nopLogger{},
		)

		resp, err := uc.Execute(ctx, &Request{PaymentRef: "pi_7", Outcome: "succeeded"})
		require.NoError(t, err)

		assert.Equal(t, int64(7), resp.BookingID)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.Equal(t, []int64{7}, svc.confirmed)
		assert.Empty(t, svc.cancelled)
	})

	t.Run("cancels pending hold on verified failure", func(t *testing.T) {
		t.Parallel()
		svc := &fakeBookingService{}
		uc := NewUseCase(
			&fakeBookingRepo{booking: pendingBookingWithRef("pi_7")},
			svc,
			&fakePaymentClient{intent: intentWith(paymentservice.IntentStatusFailed)},
			nopLogger{},
		)

		resp, err := uc.Execute(ctx, &Request{PaymentRef: "pi_7", Outcome: "failed"})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		assert.Equal(t, []int64{7}, svc.cancelled)
		assert.Empty(t, svc.confirmed)
	})

	t.Run("webhook outcome must match processor state", func(t *testing.T) {
		t.Parallel()
		svc := &fakeBookingService{}
		uc := NewUseCase(
			&fakeBookingRepo{booking: pendingBookingWithRef("pi_7")},
			svc,
			&fakePaymentClient{intent: intentWith(paymentservice.IntentStatusFailed)},
			nopLogger{},
		)

		// Webhook утверждает успех, процессинг говорит failed
		_, err := uc.Execute(ctx, &Request{PaymentRef: "pi_7", Outcome: "succeeded"})
		assert.ErrorIs(t, err, ErrOutcomeMismatch)
		assert.Empty(t, svc.confirmed)
		assert.Empty(t, svc.cancelled)
	})

	t.Run("intent still pending at processor", func(t *testing.T) {
		t.Parallel()
		uc := NewUseCase(
			&fakeBookingRepo{booking: pendingBookingWithRef("pi_7")},
			&fakeBookingService{},
			&fakePaymentClient{intent: intentWith(paymentservice.IntentStatusPending)},
			nopLogger{},
		)

		_, err := uc.Execute(ctx, &Request{PaymentRef: "pi_7", Outcome: "succeeded"})
		assert.ErrorIs(t, err, ErrIntentStillPending)
	})

	t.Run("unknown payment ref", func(t *testing.T) {
		t.Parallel()
		uc := NewUseCase(
			&fakeBookingRepo{},
			&fakeBookingService{},
			&fakePaymentClient{intent: intentWith(paymentservice.IntentStatusSucceeded)},
			nopLogger{},
		)

		_, err := uc.Execute(ctx, &Request{PaymentRef: "pi_unknown", Outcome: "succeeded"})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("intent missing at processor", func(t *testing.T) {
		t.Parallel()
		uc := NewUseCase(
			&fakeBookingRepo{booking: pendingBookingWithRef("pi_7")},
			&fakeBookingService{},
			&fakePaymentClient{err: paymentservice.ErrIntentNotFound},
			nopLogger{},
		)

		_, err := uc.Execute(ctx, &Request{PaymentRef: "pi_7", Outcome: "succeeded"})
		assert.ErrorIs(t, err, ErrIntentNotFound)
	})

	t.Run("expired hold maps to refund-required error", func(t *testing.T) {
		t.Parallel()
		svc := &fakeBookingService{confirmErr: bookings.ErrHoldExpired}
		uc := NewUseCase(
			&fakeBookingRepo{booking: pendingBookingWithRef("pi_7")},
			svc,
			&fakePaymentClient{intent: intentWith(paymentservice.IntentStatusSucceeded)},
			nopLogger{},
		)

		_, err := uc.Execute(ctx, &Request{PaymentRef: "pi_7", Outcome: "succeeded"})
		assert.ErrorIs(t, err, ErrHoldExpired)
	})

	t.Run("failed payment for already swept booking is not an error", func(t *testing.T) {
		t.Parallel()
		svc := &fakeBookingService{cancelErr: bookings.ErrCannotCancel}
		uc := NewUseCase(
			&fakeBookingRepo{booking: pendingBookingWithRef("pi_7")},
			svc,
			&fakePaymentClient{intent: intentWith(paymentservice.IntentStatusFailed)},
			nopLogger{},
		)

		resp, err := uc.Execute(ctx, &Request{PaymentRef: "pi_7", Outcome: "failed"})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()
		uc := NewUseCase(&fakeBookingRepo{}, &fakeBookingService{}, &fakePaymentClient{}, nopLogger{})

		_, err := uc.Execute(ctx, &Request{PaymentRef: "", Outcome: "succeeded"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Execute(ctx, &Request{PaymentRef: "pi_7", Outcome: "maybe"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
