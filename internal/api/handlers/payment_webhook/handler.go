package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	confirmPayment "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgIntentNotFound     = "платежный intent не найден"
	msgOutcomeMismatch    = "исход платежа не подтвержден процессингом"
	msgIntentStillPending = "платеж еще не завершен"
	msgHoldExpired        = "срок оплаты брони истек, требуется возврат средств"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PaymentWebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/webhook - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /payments/webhook - Booking not found: intent=%s", req.PaymentRef)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmPayment.ErrIntentNotFound):
			h.logger.Warn("POST /payments/webhook - Intent not found: intent=%s", req.PaymentRef)
			handlers.RespondNotFound(w, msgIntentNotFound)

		case errors.Is(err, confirmPayment.ErrOutcomeMismatch):
			h.logger.Warn("POST /payments/webhook - Outcome mismatch: intent=%s, outcome=%s",
				req.PaymentRef, req.Outcome)
			handlers.RespondConflict(w, msgOutcomeMismatch)

		case errors.Is(err, confirmPayment.ErrIntentStillPending):
			h.logger.Warn("POST /payments/webhook - Intent still pending: intent=%s", req.PaymentRef)
			handlers.RespondConflict(w, msgIntentStillPending)

		case errors.Is(err, confirmPayment.ErrHoldExpired):
			h.logger.Warn("POST /payments/webhook - Hold expired: intent=%s", req.PaymentRef)
			handlers.RespondGone(w, msgHoldExpired)

		default:
			h.logger.Error("POST /payments/webhook - Failed to process webhook: intent=%s, error=%v",
				req.PaymentRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Processed: booking_id=%d, status=%s",
		result.BookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, PaymentWebhookResponse{
		BookingID: result.BookingID,
		Status:    result.Status,
	})
}
