// Package auth consumes the backend's tokens: it logs in, keeps the token
// pair in the store and tells the rest of the host who is logged in.
package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"hotelindigo/internal/apiclient"
	"hotelindigo/internal/domain"
	"hotelindigo/internal/pkg/jwt"
	"hotelindigo/internal/storage"
)

type Service struct {
	tokens TokenRepository
	store  storage.Store
	now    func() time.Time
}

func NewService(tokens TokenRepository, store storage.Store) *Service {
	return &Service{tokens: tokens, store: store, now: time.Now}
}

// Login exchanges credentials for a token pair and persists it with the user.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.SessionUser, error) {
	pair, err := s.tokens.Obtain(ctx, username, password)
	if err != nil {
		if apiclient.StatusOf(err) == http.StatusUnauthorized {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	claims, err := jwt.Inspect(pair.Access)
	if err != nil {
		return nil, err
	}
	user := userFrom(pair.User, claims)
	if user.Username == "" {
		user.Username = username
	}

	if err := s.store.Set(ctx, storage.KeyToken, pair.Access); err != nil {
		return nil, err
	}
	if pair.Refresh != "" {
		if err := s.store.Set(ctx, storage.KeyRefreshToken, pair.Refresh); err != nil {
			return nil, err
		}
	}
	if err := storage.SaveJSON(ctx, s.store, storage.KeyUser, user); err != nil {
		return nil, err
	}

	log.Printf("login user_id=%d username=%s", user.ID, user.Username)
	return user, nil
}

// Logout drops the session keys. The cart and staged food reservations stay.
func (s *Service) Logout(ctx context.Context) error {
	for _, key := range []string{storage.KeyToken, storage.KeyRefreshToken, storage.KeyUser} {
		if err := s.store.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Current returns the logged-in user. An expired access token still counts
// while a refresh token is held, the client refreshes it on first use.
func (s *Service) Current(ctx context.Context) (*domain.SessionUser, error) {
	token, ok, err := s.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, ErrNotAuthenticated
	}
	claims, err := jwt.Inspect(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	if claims.Expired(s.now()) {
		if _, ok, _ := s.store.Get(ctx, storage.KeyRefreshToken); !ok {
			return nil, ErrNotAuthenticated
		}
	}

	var saved domain.SessionUser
	found, err := storage.LoadJSON(ctx, s.store, storage.KeyUser, &saved)
	if err != nil && !errors.Is(err, storage.ErrMalformed) {
		return nil, err
	}
	if !found {
		return userFrom(nil, claims), nil
	}
	return userFrom(&saved, claims), nil
}

func (s *Service) Authenticated(ctx context.Context) bool {
	_, err := s.Current(ctx)
	return err == nil
}

func userFrom(u *domain.SessionUser, c *jwt.Claims) *domain.SessionUser {
	out := domain.SessionUser{}
	if u != nil {
		out = *u
	}
	if out.ID == 0 {
		out.ID = c.UserID
	}
	if out.Username == "" {
		out.Username = c.Username
	}
	if out.Role == "" {
		out.Role = c.Role
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return &out
}
