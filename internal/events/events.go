// Package events publishes notable front-end outcomes such as confirmed
// bookings or placed orders for downstream consumers.
package events

import (
	"context"
	"time"
)

const (
	TypeBookingConfirmed     = "booking_confirmed"
	TypeOrderPlaced          = "order_placed"
	TypeReservationCancelled = "reservation_cancelled"
)

type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
