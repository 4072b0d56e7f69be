package get_company_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidVehicleID = "некорректный ID автомобиля"
	msgInvalidPeriod    = "некорректный период, ожидается RFC 3339"
	msgInvalidFilter    = "некорректные параметры фильтра"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/bookings
// Query: vehicleId, startAfter, startBefore, status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyIDStr := vars["companyId"]

	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{companyId}/bookings - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	query := r.URL.Query()

	serviceReq := &models.GetCompanyBookingsRequest{
		CompanyID:       companyID,
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if raw := query.Get("vehicleId"); raw != "" {
		vehicleID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /companies/{companyId}/bookings - Invalid vehicle ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidVehicleID)
			return
		}
		serviceReq.VehicleID = &vehicleID
	}

	if raw := query.Get("startAfter"); raw != "" {
		startAfter, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /companies/{companyId}/bookings - Invalid startAfter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		serviceReq.StartAfter = &startAfter
	}

	if raw := query.Get("startBefore"); raw != "" {
		startBefore, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /companies/{companyId}/bookings - Invalid startBefore: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		serviceReq.StartBefore = &startBefore
	}

	if status := query.Get("status"); status != "" {
		serviceReq.Status = &status
	}

	result, err := h.service.GetCompanyBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /companies/{companyId}/bookings - Invalid filter: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /companies/{companyId}/bookings - Failed to get bookings: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{companyId}/bookings - Bookings retrieved: company_id=%d, count=%d",
		companyID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
