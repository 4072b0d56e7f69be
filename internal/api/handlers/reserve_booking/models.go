package reserve_booking

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	reserveBooking "github.com/m04kA/SMC-RentalService/internal/usecase/reserve_booking"
)

// ReserveBookingRequest HTTP request model
type ReserveBookingRequest struct {
	VehicleID int64   `json:"vehicleId"`
	DriverID  *int64  `json:"driverId,omitempty"`
	FromDate  string  `json:"fromDate"` // YYYY-MM-DD
	FromTime  string  `json:"fromTime"` // HH:MM
	ToDate    string  `json:"toDate"`   // YYYY-MM-DD
	ToTime    string  `json:"toTime"`   // HH:MM
	City      string  `json:"city"`
	Intercity bool    `json:"intercity"`
	Amount    float64 `json:"amount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// с каноникализацией интервала в UTC-мгновения
func (r *ReserveBookingRequest) ToUseCaseRequest(userID int64) (*reserveBooking.Request, error) {
	startAt, err := handlers.ParseDateTime(r.FromDate, r.FromTime)
	if err != nil {
		return nil, err
	}

	endAt, err := handlers.ParseDateTime(r.ToDate, r.ToTime)
	if err != nil {
		return nil, err
	}

	return &reserveBooking.Request{
		UserID:    userID,
		VehicleID: r.VehicleID,
		DriverID:  r.DriverID,
		StartAt:   startAt,
		EndAt:     endAt,
		City:      r.City,
		Intercity: r.Intercity,
		Amount:    r.Amount,
	}, nil
}

// ReserveBookingResponse HTTP response model
type ReserveBookingResponse struct {
	ID        int64     `json:"id"`
	VehicleID int64     `json:"vehicleId"`
	UserID    int64     `json:"userId"`
	CompanyID int64     `json:"companyId"`
	DriverID  *int64    `json:"driverId,omitempty"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	City      string    `json:"city"`
	Intercity bool      `json:"intercity"`
	Status    string    `json:"status"`
	Amount    float64   `json:"amount"`
	ExpiresAt string    `json:"expiresAt"` // ISO 8601

	PaymentRef   string `json:"paymentRef"`
	ClientSecret string `json:"clientSecret"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveBooking.Response) *ReserveBookingResponse {
	return &ReserveBookingResponse{
		ID:           resp.ID,
		VehicleID:    resp.VehicleID,
		UserID:       resp.UserID,
		CompanyID:    resp.CompanyID,
		DriverID:     resp.DriverID,
		StartAt:      resp.StartAt,
		EndAt:        resp.EndAt,
		City:         resp.City,
		Intercity:    resp.Intercity,
		Status:       resp.Status,
		Amount:       resp.Amount,
		ExpiresAt:    resp.ExpiresAt.Format(time.RFC3339),
		PaymentRef:   resp.PaymentRef,
		ClientSecret: resp.ClientSecret,
	}
}
