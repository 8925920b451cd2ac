package booking

import (
	"context"
	"encoding/json"

	"hotelindigo/internal/domain"
	"hotelindigo/internal/modules/availability"
)

// Gateway is the backend side of the workflow.
type Gateway interface {
	RequestCode(ctx context.Context, path string, payload any) (string, error)
	Create(ctx context.Context, path string, payload any) (json.RawMessage, error)
}

type AvailabilityChecker interface {
	Check(ctx context.Context, c availability.Candidate) (availability.Status, error)
}

type SessionChecker interface {
	Authenticated(ctx context.Context) bool
}

type RoomRepository interface {
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}
