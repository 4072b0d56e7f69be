package handover_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidTimestamp = "некорректный момент выдачи, ожидается RFC 3339"
	msgNotFound         = "бронирование не найдено"
	msgInvalidState     = "выдача недоступна для текущего статуса брони"
)

type Handler struct {
	service      BookingService
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service BookingService, timeProvider TimeProvider, logger Logger) *Handler {
	return &Handler{
		service:      service,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/handover
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/handover - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Тело опционально: без него момент выдачи - текущее время
	var req HandoverBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/{id}/handover - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	at := h.timeProvider.Now()
	if req.HandoverAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.HandoverAt)
		if err != nil {
			h.logger.Warn("PATCH /bookings/{id}/handover - Invalid handoverAt: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimestamp)
			return
		}
		at = parsed.UTC()
	}

	err = h.service.Handover(r.Context(), bookingID, at)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/handover - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("PATCH /bookings/{id}/handover - Invalid state: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidState)

		default:
			h.logger.Error("PATCH /bookings/{id}/handover - Failed to handover: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/handover - Vehicle handed over: booking_id=%d, at=%s",
		bookingID, at.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, nil)
}
