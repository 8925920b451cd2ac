package auth

import (
	"context"

	"hotelindigo/internal/repository"
)

type TokenRepository interface {
	Obtain(ctx context.Context, username, password string) (*repository.TokenPair, error)
}
