package repository

import (
	"context"
	"net/url"

	"hotelindigo/internal/apiclient"
)

// API is the part of apiclient.Client the repositories use.
type API interface {
	Do(ctx context.Context, req *apiclient.Request) (*apiclient.Response, error)
	Get(ctx context.Context, path string, query url.Values, dst any) error
	Post(ctx context.Context, path string, body, dst any) error
	Patch(ctx context.Context, path string, body, dst any) error
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, path string, query url.Values, dst any) error
}

var _ API = (*apiclient.Client)(nil)
