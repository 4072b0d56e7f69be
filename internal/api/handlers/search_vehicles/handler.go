package search_vehicles

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	searchVehicles "github.com/m04kA/SMC-RentalService/internal/usecase/search_vehicles"
)

const (
	msgInvalidInterval = "некорректный интервал, ожидается fromDate/fromTime/toDate/toTime"
	msgInvalidRequest  = "некорректные параметры запроса"
)

type Handler struct {
	useCase SearchVehiclesUseCase
	logger  Logger
}

func NewHandler(useCase SearchVehiclesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles/search
// Query: fromDate, fromTime, toDate, toTime, city
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	startAt, err := handlers.ParseDateTime(query.Get("fromDate"), query.Get("fromTime"))
	if err != nil {
		h.logger.Warn("GET /vehicles/search - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	endAt, err := handlers.ParseDateTime(query.Get("toDate"), query.Get("toTime"))
	if err != nil {
		h.logger.Warn("GET /vehicles/search - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	useCaseReq := &searchVehicles.Request{
		StartAt: startAt,
		EndAt:   endAt,
		City:    query.Get("city"),
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, searchVehicles.ErrInvalidInput):
			h.logger.Warn("GET /vehicles/search - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /vehicles/search - Failed to search vehicles: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vehicles/search - Found %d vehicles for city=%s", len(result.Vehicles), useCaseReq.City)
	handlers.RespondJSON(w, http.StatusOK, result)
}
