package foodreservation

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotelindigo/internal/domain"
	"hotelindigo/internal/storage"
)

// Reservations owns the staged list and writes it through to the store
// under storage.KeyFoodReservations.
type Reservations struct {
	mu       sync.Mutex
	store    storage.Store
	state    State
	now      func() time.Time
	onChange func(State)
}

type Option func(*Reservations)

func WithClock(now func() time.Time) Option {
	return func(r *Reservations) { r.now = now }
}

func WithOnChange(fn func(State)) Option {
	return func(r *Reservations) { r.onChange = fn }
}

// New restores the staged list. A missing or unreadable payload yields an
// empty list.
func New(ctx context.Context, store storage.Store, opts ...Option) *Reservations {
	r := &Reservations{
		store: store,
		state: State{Reservations: []Reservation{}},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	var saved State
	found, err := storage.LoadJSON(ctx, store, storage.KeyFoodReservations, &saved)
	switch {
	case errors.Is(err, storage.ErrMalformed):
		log.Printf("food_reservations_restore status=discarded reason=%q", err.Error())
	case err != nil:
		log.Printf("food_reservations_restore status=failed error=%q", err.Error())
	case found:
		r.state, _ = Reduce(r.state, Load{Reservations: saved.Reservations})
	}
	return r
}

func (r *Reservations) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Add stages a pending reservation for dish.
func (r *Reservations) Add(ctx context.Context, dish domain.Dish, extra Extra) (Reservation, error) {
	if extra.Quantity < 0 {
		return Reservation{}, ErrInvalidQuantity
	}
	if extra.ScheduledFor != "" {
		if _, err := domain.ParseAPITime(extra.ScheduledFor, time.UTC); err != nil {
			return Reservation{}, ErrInvalidSchedule
		}
	}
	if extra.Quantity == 0 {
		extra.Quantity = 1
	}

	now := r.now()
	res := Reservation{
		ID:           ID(uuid.NewString()),
		DishID:       dish.ID,
		DishName:     dish.Name,
		DishPrice:    dish.Price,
		DishCategory: dish.CategoryDisplay,
		DishImage:    dish.ImageURL,
		Status:       domain.ReservationPending,
		CreatedAt:    now,
		Time:         now.Format("15:04"),
		Quantity:     extra.Quantity,
		Notes:        extra.Notes,
		ScheduledFor: extra.ScheduledFor,
	}
	if _, err := r.dispatch(ctx, Add{Reservation: res}); err != nil {
		return Reservation{}, err
	}
	return res, nil
}

func (r *Reservations) Remove(ctx context.Context, id ID) (State, error) {
	return r.dispatch(ctx, Remove{ID: id})
}

func (r *Reservations) Update(ctx context.Context, id ID, patch Patch) (Reservation, error) {
	next, err := r.dispatch(ctx, Update{ID: id, Patch: patch})
	if err != nil {
		return Reservation{}, err
	}
	res, _ := next.Find(id)
	return res, nil
}

func (r *Reservations) Confirm(ctx context.Context, id ID) (Reservation, error) {
	status := domain.ReservationConfirmed
	return r.Update(ctx, id, Patch{Status: &status})
}

func (r *Reservations) Cancel(ctx context.Context, id ID) (Reservation, error) {
	status := domain.ReservationCancelled
	return r.Update(ctx, id, Patch{Status: &status})
}

func (r *Reservations) Clear(ctx context.Context) (State, error) {
	return r.dispatch(ctx, Clear{})
}

func (r *Reservations) dispatch(ctx context.Context, a Action) (State, error) {
	r.mu.Lock()
	next, err := Reduce(r.state, a)
	if err != nil {
		r.mu.Unlock()
		return next, err
	}
	if err := storage.SaveJSON(ctx, r.store, storage.KeyFoodReservations, next); err != nil {
		prev := r.state
		r.mu.Unlock()
		return prev, err
	}
	r.state = next
	r.mu.Unlock()

	if r.onChange != nil {
		r.onChange(next)
	}
	return next, nil
}
