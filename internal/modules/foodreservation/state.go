// Package foodreservation stages dish reservations locally before anything
// is sent to the restaurant. Entries are snapshots of the dish at the time
// they were added.
package foodreservation

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"hotelindigo/internal/domain"
)

// ID is a locally generated identity. Stored lists written by older clients
// used numeric timestamps, those are read as their decimal string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '"' {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*id = ID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = ID(s)
	return nil
}

type Reservation struct {
	ID           ID                       `json:"id"`
	DishID       int64                    `json:"plato_id"`
	DishName     string                   `json:"plato_nombre"`
	DishPrice    decimal.Decimal          `json:"plato_precio"`
	DishCategory string                   `json:"plato_categoria,omitempty"`
	DishImage    string                   `json:"plato_imagen,omitempty"`
	Status       domain.ReservationStatus `json:"estado"`
	CreatedAt    time.Time                `json:"fecha_reserva"`
	Time         string                   `json:"hora_reserva"`
	Quantity     int                      `json:"cantidad,omitempty"`
	Notes        string                   `json:"notas,omitempty"`
	ScheduledFor string                   `json:"fecha_programada,omitempty"`
}

func (r Reservation) Pending() bool {
	return r.Status == domain.ReservationPending
}

// Extra carries the optional fields the user may give when reserving.
type Extra struct {
	Quantity     int    `json:"cantidad"`
	Notes        string `json:"notas"`
	ScheduledFor string `json:"fecha_programada"`
}

// Patch is a partial update. Nil fields are left as they are.
type Patch struct {
	Status       *domain.ReservationStatus `json:"estado,omitempty"`
	Quantity     *int                      `json:"cantidad,omitempty"`
	Notes        *string                   `json:"notas,omitempty"`
	ScheduledFor *string                   `json:"fecha_programada,omitempty"`
}

// State is the ordered list of staged reservations.
type State struct {
	Reservations []Reservation
}

func (s State) MarshalJSON() ([]byte, error) {
	if s.Reservations == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Reservations)
}

func (s *State) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &s.Reservations)
}

func (s State) Find(id ID) (Reservation, bool) {
	for _, r := range s.Reservations {
		if r.ID == id {
			return r, true
		}
	}
	return Reservation{}, false
}

// Pending and Confirmed are computed on every call.
func (s State) Pending() []Reservation {
	return s.filter(domain.ReservationPending)
}

func (s State) Confirmed() []Reservation {
	return s.filter(domain.ReservationConfirmed)
}

func (s State) ByStatus(status domain.ReservationStatus) []Reservation {
	return s.filter(status)
}

func (s State) filter(status domain.ReservationStatus) []Reservation {
	out := []Reservation{}
	for _, r := range s.Reservations {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}
