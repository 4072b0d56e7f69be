package reserve_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
	reserveBooking "github.com/m04kA/SMC-RentalService/internal/usecase/reserve_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInterval     = "некорректный интервал аренды"
	msgVehicleNotFound     = "автомобиль не найден"
	msgVehicleNotAvailable = "автомобиль недоступен в выбранный интервал"
	msgBookingConflict     = "интервал пересекается с существующей бронью"
	msgInvalidInput        = "некорректные данные бронирования"
	msgPaymentRejected     = "платеж отклонен процессингом"
)

type Handler struct {
	useCase ReserveBookingUseCase
	logger  Logger
}

func NewHandler(useCase ReserveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
		return
	}

	var req ReserveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse interval: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrVehicleNotFound):
			h.logger.Warn("POST /bookings - Vehicle not found: vehicle_id=%d", req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createBooking.ErrVehicleNotAvailable):
			h.logger.Warn("POST /bookings - Vehicle not available: vehicle_id=%d, user_id=%d",
				req.VehicleID, userID)
			handlers.RespondConflict(w, msgVehicleNotAvailable)

		case errors.Is(err, createBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Booking conflict: vehicle_id=%d, user_id=%d",
				req.VehicleID, userID)
			handlers.RespondConflict(w, msgBookingConflict)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reserveBooking.ErrPaymentRejected):
			h.logger.Warn("POST /bookings - Payment rejected: vehicle_id=%d, user_id=%d",
				req.VehicleID, userID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentRejected)

		default:
			h.logger.Error("POST /bookings - Failed to reserve booking: vehicle_id=%d, user_id=%d, error=%v",
				req.VehicleID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking reserved: booking_id=%d, user_id=%d, intent=%s",
		result.ID, userID, result.PaymentRef)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
