package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ReservationStatus values are the backend's wire values.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pendiente"
	ReservationConfirmed ReservationStatus = "confirmada"
	ReservationCancelled ReservationStatus = "cancelada"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is allowed.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationConfirmed || s == ReservationCancelled
}

// Ref is a foreign key that the API serializes either as a bare id or as the
// nested object.
type Ref struct {
	ID int64
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		r.ID = 0
		return nil
	}
	if data[0] == '{' {
		var obj struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		r.ID = obj.ID
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("ref: %w", err)
	}
	r.ID = id
	return nil
}

type RoomReservation struct {
	ID         int64             `json:"id"`
	Room       Ref               `json:"habitacion"`
	CheckIn    string            `json:"fecha_checkin"`
	CheckOut   string            `json:"fecha_checkout"`
	Guests     int               `json:"huespedes"`
	Status     ReservationStatus `json:"estado"`
	TotalPrice string            `json:"precio_total,omitempty"`
	Services   map[string]bool   `json:"servicios_adicionales,omitempty"`
	CreatedAt  string            `json:"fecha_creacion,omitempty"`
}

type TableReservation struct {
	ID        int64             `json:"id"`
	Table     Ref               `json:"mesa"`
	StartsAt  string            `json:"fecha_reserva"`
	Guests    int               `json:"cantidad_personas"`
	Notes     string            `json:"notas,omitempty"`
	Status    ReservationStatus `json:"estado"`
	CreatedAt string            `json:"fecha_creacion,omitempty"`
}

type SalonReservation struct {
	ID        int64             `json:"id"`
	Salon     Ref               `json:"salon"`
	StartsAt  string            `json:"fecha_evento"`
	Guests    int               `json:"cantidad_invitados"`
	Status    ReservationStatus `json:"estado"`
	CreatedAt string            `json:"fecha_creacion,omitempty"`
}
