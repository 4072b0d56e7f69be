package handover_booking

// HandoverBookingRequest HTTP request model
// handoverAt опционален: без него момент выдачи - текущее время
type HandoverBookingRequest struct {
	HandoverAt *string `json:"handoverAt,omitempty"` // ISO 8601
}
