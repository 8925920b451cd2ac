package reservation

import "hotelindigo/internal/domain"

// Overview is everything the user has booked, newest first per kind. A kind
// whose list could not be loaded is reported in Failed and left empty.
type Overview struct {
	Rooms  []domain.RoomReservation  `json:"rooms"`
	Tables []domain.TableReservation `json:"tables"`
	Salons []domain.SalonReservation `json:"salons"`
	Failed []string                  `json:"failed,omitempty"`
}

// RoomPatch changes the stay of a pending room reservation.
type RoomPatch struct {
	CheckIn  *string         `json:"fecha_checkin" validate:"omitempty,datetime=2006-01-02"`
	CheckOut *string         `json:"fecha_checkout" validate:"omitempty,datetime=2006-01-02"`
	Guests   *int            `json:"huespedes" validate:"omitempty,min=1"`
	Services map[string]bool `json:"servicios_adicionales"`
}

type VerifyOTPRequest struct {
	Code string `json:"codigo_otp" binding:"required"`
}
