package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"hotelindigo/internal/storage"
)

// Cart owns the current snapshot. Mutations are serialised and written
// through to the store under storage.KeyCart.
type Cart struct {
	mu       sync.Mutex
	store    storage.Store
	state    State
	onChange func(State)
}

type Option func(*Cart)

// WithOnChange registers a callback run after every persisted transition.
func WithOnChange(fn func(State)) Option {
	return func(c *Cart) { c.onChange = fn }
}

// New restores the cart from the store. A missing or unreadable payload
// yields an empty cart.
func New(ctx context.Context, store storage.Store, opts ...Option) *Cart {
	c := &Cart{store: store, state: withItems(nil)}
	for _, opt := range opts {
		opt(c)
	}

	var saved State
	found, err := storage.LoadJSON(ctx, store, storage.KeyCart, &saved)
	switch {
	case errors.Is(err, storage.ErrMalformed):
		log.Printf("cart_restore status=discarded reason=%q", err.Error())
	case err != nil:
		log.Printf("cart_restore status=failed error=%q", err.Error())
	case found:
		c.state = Reduce(c.state, Load{Items: saved.Items})
	}
	return c
}

func (c *Cart) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Cart) Add(ctx context.Context, item Item, quantity int) (State, error) {
	if quantity < 1 {
		return c.Snapshot(), ErrInvalidQuantity
	}
	return c.dispatch(ctx, AddItem{Item: item, Quantity: quantity})
}

func (c *Cart) Remove(ctx context.Context, id int64) (State, error) {
	return c.dispatch(ctx, RemoveItem{ID: id})
}

func (c *Cart) UpdateQuantity(ctx context.Context, id int64, quantity int) (State, error) {
	return c.dispatch(ctx, UpdateQuantity{ID: id, Quantity: quantity})
}

// Deduct removes what an order took, leaving lines added since in place.
func (c *Cart) Deduct(ctx context.Context, items []Item) (State, error) {
	return c.dispatch(ctx, Deduct{Items: items})
}

func (c *Cart) Clear(ctx context.Context) (State, error) {
	return c.dispatch(ctx, Clear{})
}

// dispatch applies a and persists the result. When the write fails the
// previous state stays current.
func (c *Cart) dispatch(ctx context.Context, a Action) (State, error) {
	c.mu.Lock()
	next := Reduce(c.state, a)
	if err := storage.SaveJSON(ctx, c.store, storage.KeyCart, next); err != nil {
		prev := c.state
		c.mu.Unlock()
		return prev, err
	}
	c.state = next
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(next)
	}
	return next, nil
}
