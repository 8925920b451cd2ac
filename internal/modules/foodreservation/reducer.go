package foodreservation

import (
	"time"

	"hotelindigo/internal/domain"
)

type Action interface {
	isFoodReservationAction()
}

// Add appends a fully built reservation. Identity and timestamps are set by
// the owner so the reducer stays pure.
type Add struct {
	Reservation Reservation
}

type Remove struct {
	ID ID
}

type Update struct {
	ID    ID
	Patch Patch
}

type Clear struct{}

type Load struct {
	Reservations []Reservation
}

func (Add) isFoodReservationAction()    {}
func (Remove) isFoodReservationAction() {}
func (Update) isFoodReservationAction() {}
func (Clear) isFoodReservationAction()  {}
func (Load) isFoodReservationAction()   {}

// Reduce returns the state after a. An Update that fails validation returns
// the error and s unchanged; nothing of the patch is applied.
func Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case Add:
		out := make([]Reservation, len(s.Reservations), len(s.Reservations)+1)
		copy(out, s.Reservations)
		return State{Reservations: append(out, a.Reservation)}, nil

	case Remove:
		out := make([]Reservation, 0, len(s.Reservations))
		for _, r := range s.Reservations {
			if r.ID != a.ID {
				out = append(out, r)
			}
		}
		return State{Reservations: out}, nil

	case Update:
		idx := -1
		for i, r := range s.Reservations {
			if r.ID == a.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return s, ErrNotFound
		}
		next, err := applyPatch(s.Reservations[idx], a.Patch)
		if err != nil {
			return s, err
		}
		out := make([]Reservation, len(s.Reservations))
		copy(out, s.Reservations)
		out[idx] = next
		return State{Reservations: out}, nil

	case Clear:
		return State{Reservations: []Reservation{}}, nil

	case Load:
		out := make([]Reservation, 0, len(a.Reservations))
		seen := make(map[ID]bool, len(a.Reservations))
		for _, r := range a.Reservations {
			if r.ID == "" || seen[r.ID] || !r.Status.Valid() {
				continue
			}
			seen[r.ID] = true
			out = append(out, r)
		}
		return State{Reservations: out}, nil
	}
	return s, nil
}

func applyPatch(r Reservation, p Patch) (Reservation, error) {
	if r.Status.Terminal() {
		return r, ErrTerminalStatus
	}
	if p.Status != nil && !p.Status.Valid() {
		return r, ErrInvalidStatus
	}
	if p.Quantity != nil && *p.Quantity < 1 {
		return r, ErrInvalidQuantity
	}
	if p.ScheduledFor != nil && *p.ScheduledFor != "" {
		if _, err := domain.ParseAPITime(*p.ScheduledFor, time.UTC); err != nil {
			return r, ErrInvalidSchedule
		}
	}

	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Quantity != nil {
		r.Quantity = *p.Quantity
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.ScheduledFor != nil {
		r.ScheduledFor = *p.ScheduledFor
	}
	return r, nil
}
