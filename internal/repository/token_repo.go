package repository

import (
	"context"
	"errors"
	"net/http"

	"hotelindigo/internal/apiclient"
	"hotelindigo/internal/domain"
)

var ErrEmptyResponse = errors.New("backend returned an empty response")

type TokenPair struct {
	Access  string              `json:"access"`
	Refresh string              `json:"refresh"`
	User    *domain.SessionUser `json:"user,omitempty"`
}

type TokenRepository struct {
	api API
}

func NewTokenRepository(api API) *TokenRepository {
	return &TokenRepository{api: api}
}

// Obtain logs in. The request is marked as retried so that a 401 for bad
// credentials never triggers a token refresh.
func (r *TokenRepository) Obtain(ctx context.Context, username, password string) (*TokenPair, error) {
	resp, err := r.api.Do(ctx, &apiclient.Request{
		Method:  http.MethodPost,
		Path:    PathToken,
		Body:    map[string]string{"username": username, "password": password},
		Retried: true,
	})
	if err != nil {
		return nil, err
	}
	var out TokenPair
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	if out.Access == "" {
		return nil, ErrEmptyResponse
	}
	return &out, nil
}
