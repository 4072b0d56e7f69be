package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
)

// UseCase use case обработки webhook об исходе платежа (вторая фаза)
//
// Webhook не является источником истины: заявленный исход сверяется
// со статусом intent на стороне процессинга, и только подтвержденный
// исход двигает state machine. Подделка или гонка webhook'ов таким
// образом не может подтвердить неоплаченную бронь
type UseCase struct {
	bookingRepo   BookingRepository
	bookingSvc    BookingService
	paymentClient PaymentServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	bookingSvc BookingService,
	paymentClient PaymentServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		bookingSvc:    bookingSvc,
		paymentClient: paymentClient,
		logger:        logger,
	}
}

// Execute обрабатывает webhook об исходе платежа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.PaymentRef == "" {
		return nil, fmt.Errorf("%w: paymentRef is required", ErrInvalidInput)
	}
	if req.Outcome != string(paymentservice.IntentStatusSucceeded) &&
		req.Outcome != string(paymentservice.IntentStatusFailed) {
		return nil, fmt.Errorf("%w: unknown outcome %q", ErrInvalidInput, req.Outcome)
	}

	uc.logger.Info("ConfirmPayment: webhook for intent=%s, outcome=%s", req.PaymentRef, req.Outcome)

	// 1. Находим бронь по платежной ссылке
	booking, err := uc.bookingRepo.GetByPaymentRef(ctx, req.PaymentRef)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmPayment: no booking for intent=%s", req.PaymentRef)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to get booking for intent=%s: %v", req.PaymentRef, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 2. Сверяем исход с процессингом
	intent, err := uc.paymentClient.GetIntent(ctx, req.PaymentRef)
	if err != nil {
		if errors.Is(err, paymentservice.ErrIntentNotFound) {
			uc.logger.Warn("ConfirmPayment: intent=%s not found at processor", req.PaymentRef)
			return nil, ErrIntentNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to verify intent=%s: %v", req.PaymentRef, err)
		return nil, fmt.Errorf("%w: failed to verify intent: %v", ErrInternal, err)
	}

	if intent.Status == paymentservice.IntentStatusPending {
		uc.logger.Warn("ConfirmPayment: intent=%s is still pending at processor", req.PaymentRef)
		return nil, ErrIntentStillPending
	}

	if string(intent.Status) != req.Outcome {
		uc.logger.Warn("ConfirmPayment: outcome mismatch for intent=%s: webhook=%s, processor=%s",
			req.PaymentRef, req.Outcome, intent.Status)
		return nil, ErrOutcomeMismatch
	}

	// 3. Двигаем state machine по подтвержденному исходу
	switch intent.Status {
	case paymentservice.IntentStatusSucceeded:
		if err := uc.bookingSvc.ConfirmPayment(ctx, booking.ID); err != nil {
			return nil, uc.mapConfirmError(booking.ID, err)
		}
		uc.logger.Info("ConfirmPayment: booking id=%d confirmed by intent=%s", booking.ID, req.PaymentRef)
		return &Response{BookingID: booking.ID, Status: string(domain.StatusConfirmed)}, nil

	default: // IntentStatusFailed
		if err := uc.bookingSvc.Cancel(ctx, booking.ID, "payment failed"); err != nil {
			// Бронь могла уже истечь и быть отменена уборкой - это не ошибка
			if errors.Is(err, bookings.ErrCannotCancel) {
				uc.logger.Info("ConfirmPayment: booking id=%d already inactive, skip cancel", booking.ID)
				return &Response{BookingID: booking.ID, Status: string(domain.StatusCancelled)}, nil
			}
			uc.logger.Error("ConfirmPayment: failed to cancel booking id=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}
		uc.logger.Info("ConfirmPayment: booking id=%d cancelled, payment failed (intent=%s)",
			booking.ID, req.PaymentRef)
		return &Response{BookingID: booking.ID, Status: string(domain.StatusCancelled)}, nil
	}
}

// mapConfirmError конвертирует ошибки state machine в ошибки usecase
func (uc *UseCase) mapConfirmError(bookingID int64, err error) error {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookings.ErrHoldExpired):
		uc.logger.Warn("ConfirmPayment: hold expired for booking id=%d, refund required", bookingID)
		return ErrHoldExpired
	default:
		uc.logger.Error("ConfirmPayment: failed to confirm booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
	}
}
