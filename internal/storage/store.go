// Package storage is the durable client-side key/value storage the host keeps
// its session state in: tokens, the cart and the staged food reservations.
//
// Several processes may share one backing store. There is no cross-process
// synchronisation; the last writer of a key wins.
package storage

import (
	"context"
	"errors"
)

const (
	KeyToken            = "token"
	KeyRefreshToken     = "refresh_token"
	KeyUser             = "user"
	KeyCart             = "restaurantCart"
	KeyFoodReservations = "foodReservations"
)

var ErrMalformed = errors.New("malformed stored value")

// Store mirrors the browser's localStorage contract.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	// Clear drops every key of the store's namespace.
	Clear(ctx context.Context) error
}
