package reserve_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

// --- fakes ---

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCreator struct {
	resp *create_booking.Response
	err  error
}

func (f *fakeCreator) Execute(_ context.Context, _ *create_booking.Request) (*create_booking.Response, error) {
	return f.resp, f.err
}

type fakeBookingService struct {
	attached  map[int64]string
	cancelled map[int64]string
	attachErr error
	cancelErr error
}

func newFakeBookingService() *fakeBookingService {
	return &fakeBookingService{
		attached:  make(map[int64]string),
		cancelled: make(map[int64]string),
	}
}

func (f *fakeBookingService) AttachPayment(_ context.Context, bookingID int64, paymentRef string) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attached[bookingID] = paymentRef
	return nil
}

func (f *fakeBookingService) Cancel(_ context.Context, bookingID int64, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled[bookingID] = reason
	return nil
}

type fakePaymentClient struct {
	intent  *paymentservice.Intent
	err     error
	lastReq paymentservice.CreateIntentRequest
}

func (f *fakePaymentClient) CreateIntent(_ context.Context, req paymentservice.CreateIntentRequest) (*paymentservice.Intent, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.intent, nil
}

// --- helpers ---

var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func createdBooking() *create_booking.Response {
	return &create_booking.Response{
		ID:        7,
		VehicleID: 1,
		UserID:    100,
		CompanyID: 10,
		StartAt:   testNow.Add(48 * time.Hour),
		EndAt:     testNow.Add(52 * time.Hour),
		City:      "Москва",
		Status:    "pending",
		Amount:    4200,
		ExpiresAt: testNow.Add(15 * time.Minute),
	}
}

// --- tests ---

func TestUseCase_Execute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("reserves booking and attaches intent", func(t *testing.T) {
		t.Parallel()
		svc := newFakeBookingService()
		client := &fakePaymentClient{
			intent: &paymentservice.Intent{
				Ref:          "pi_7",
				ClientSecret: "secret_7",
				Status:       paymentservice.IntentStatusPending,
			},
		}
		uc := NewUseCase(&fakeCreator{resp: createdBooking()}, svc, client, "RUB", nopLogger{})

		resp, err := uc.Execute(ctx, &Request{})
		require.NoError(t, err)

		assert.Equal(t, "pi_7", resp.PaymentRef)
		assert.Equal(t, "secret_7", resp.ClientSecret)
		assert.Equal(t, "pi_7", svc.attached[7])
		assert.Empty(t, svc.cancelled)

		// Intent создан с ключом идемпотентности и данными брони
		assert.Equal(t, int64(7), client.lastReq.BookingID)
		assert.Equal(t, 4200.0, client.lastReq.Amount)
		assert.Equal(t, "RUB", client.lastReq.Currency)
		assert.NotEmpty(t, client.lastReq.IdempotencyKey)
	})

	t.Run("creation errors pass through untouched", func(t *testing.T) {
		t.Parallel()
		svc := newFakeBookingService()
		uc := NewUseCase(&fakeCreator{err: create_booking.ErrBookingConflict}, svc, &fakePaymentClient{}, "RUB", nopLogger{})

		_, err := uc.Execute(ctx, &Request{})
		assert.ErrorIs(t, err, create_booking.ErrBookingConflict)
		assert.Empty(t, svc.cancelled)
	})

	t.Run("intent rejection triggers compensating cancel", func(t *testing.T) {
		t.Parallel()
		svc := newFakeBookingService()
		client := &fakePaymentClient{err: paymentservice.ErrIntentRejected}
		uc := NewUseCase(&fakeCreator{resp: createdBooking()}, svc, client, "RUB", nopLogger{})

		_, err := uc.Execute(ctx, &Request{})
		assert.ErrorIs(t, err, ErrPaymentRejected)
		assert.Contains(t, svc.cancelled, int64(7))
	})

	t.Run("processor outage triggers compensating cancel", func(t *testing.T) {
		t.Parallel()
		svc := newFakeBookingService()
		client := &fakePaymentClient{err: paymentservice.ErrInternal}
		uc := NewUseCase(&fakeCreator{resp: createdBooking()}, svc, client, "RUB", nopLogger{})

		_, err := uc.Execute(ctx, &Request{})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Contains(t, svc.cancelled, int64(7))
	})

	t.Run("attach failure triggers compensating cancel", func(t *testing.T) {
		t.Parallel()
		svc := newFakeBookingService()
		svc.attachErr = assert.AnError
		client := &fakePaymentClient{
			intent: &paymentservice.Intent{Ref: "pi_7", Status: paymentservice.IntentStatusPending},
		}
		uc := NewUseCase(&fakeCreator{resp: createdBooking()}, svc, client, "RUB", nopLogger{})

		_, err := uc.Execute(ctx, &Request{})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Contains(t, svc.cancelled, int64(7))
	})

	t.Run("failed compensation is swallowed", func(t *testing.T) {
		t.Parallel()
		svc := newFakeBookingService()
		svc.cancelErr = assert.AnError
		client := &fakePaymentClient{err: paymentservice.ErrIntentRejected}
		uc := NewUseCase(&fakeCreator{resp: createdBooking()}, svc, client, "RUB", nopLogger{})

		// Ошибка отмены не маскирует платежную ошибку: hold истечет сам
		_, err := uc.Execute(ctx, &Request{})
		assert.ErrorIs(t, err, ErrPaymentRejected)
	})
}
