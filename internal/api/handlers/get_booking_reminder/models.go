package get_booking_reminder

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ReminderResponse HTTP response model
// reminder == null означает, что напоминать не о чем
type ReminderResponse struct {
	Reminder *ReminderBody `json:"reminder"`
}

// ReminderBody тело напоминания
type ReminderBody struct {
	Kind      string `json:"kind"`
	BookingID int64  `json:"bookingId"`
	DueAt     string `json:"dueAt"` // ISO 8601
}

// FromDomainReminder конвертирует domain модель в HTTP response
func FromDomainReminder(r *domain.Reminder) ReminderResponse {
	if r == nil {
		return ReminderResponse{}
	}

	return ReminderResponse{
		Reminder: &ReminderBody{
			Kind:      string(r.Kind),
			BookingID: r.BookingID,
			DueAt:     r.DueAt.Format(time.RFC3339),
		},
	}
}
