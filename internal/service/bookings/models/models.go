package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetCompanyBookingsRequest запрос на получение бронирований компании
type GetCompanyBookingsRequest struct {
	CompanyID       int64      `json:"companyId"`
	VehicleID       *int64     `json:"vehicleId,omitempty"`
	StartAfter      *time.Time `json:"startAfter,omitempty"`
	StartBefore     *time.Time `json:"startBefore,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCompanyBookingsRequest) ToDomainFilter() (domain.CompanyBookingsFilter, error) {
	filter := domain.CompanyBookingsFilter{
		CompanyID:       r.CompanyID,
		VehicleID:       r.VehicleID,
		StartAfter:      r.StartAfter,
		StartBefore:     r.StartBefore,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
// Статус отдается эффективный: просроченная pending-бронь видна как cancelled
type BookingResponse struct {
	ID        int64  `json:"id"`
	VehicleID int64  `json:"vehicleId"`
	UserID    int64  `json:"userId"`
	CompanyID int64  `json:"companyId"`
	DriverID  *int64 `json:"driverId,omitempty"`

	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	City      string    `json:"city"`
	Intercity bool      `json:"intercity"`

	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	PaymentRef *string `json:"paymentRef,omitempty"`

	HandoverAt *string `json:"handoverAt,omitempty"` // ISO 8601
	ExpiresAt  *string `json:"expiresAt,omitempty"`  // ISO 8601

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// now нужен для вычисления эффективного статуса (lazy expiry)
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		VehicleID:          b.VehicleID,
		UserID:             b.UserID,
		CompanyID:          b.CompanyID,
		DriverID:           b.DriverID,
		StartAt:            b.Interval.StartAt,
		EndAt:              b.Interval.EndAt,
		City:               b.City,
		Intercity:          b.Intercity,
		Status:             string(b.EffectiveStatus(now)),
		Amount:             b.Amount,
		PaymentRef:         b.PaymentRef,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.HandoverAt != nil {
		s := b.HandoverAt.Format(time.RFC3339)
		resp.HandoverAt = &s
	}
	if b.ExpiresAt != nil && !b.HoldExpired(now) {
		s := b.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &s
	}
	if b.CancelledAt != nil {
		s := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.ValidStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
