// Package apiclient talks to the hotel REST backend. It attaches the stored
// bearer token to every request and, on a 401, refreshes the session once and
// replays the request.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"hotelindigo/internal/storage"
)

const refreshPath = "api/token/refresh/"

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// Retried is set once the request has been replayed after a refresh.
	Retried bool
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) Decode(v any) error {
	if v == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithSessionExpiredHook registers the callback run after a failed refresh
// has wiped the stored session.
func WithSessionExpiredHook(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onExpired = fn }
}

type Client struct {
	baseURL   string
	http      *http.Client
	store     storage.Store
	refreshes singleflight.Group
	onExpired func(ctx context.Context)
}

func New(baseURL string, store storage.Store, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		store:   store,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	token, _, err := c.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}

	resp, err := c.send(ctx, req, body, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !req.Retried {
		req.Retried = true
		original := newAPIError(resp.StatusCode, resp.Body)

		access, err := c.refresh(ctx)
		if err != nil {
			if errors.Is(err, errNoRefreshToken) {
				return nil, original
			}
			return nil, fmt.Errorf("%w: %w", ErrSessionExpired, original)
		}

		resp, err = c.send(ctx, req, body, access)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, resp.Body)
	}
	return resp, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, dst any) error {
	return c.call(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, dst)
}

func (c *Client) Post(ctx context.Context, path string, body, dst any) error {
	return c.call(ctx, &Request{Method: http.MethodPost, Path: path, Body: body}, dst)
}

func (c *Client) Patch(ctx context.Context, path string, body, dst any) error {
	return c.call(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body}, dst)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.call(ctx, &Request{Method: http.MethodDelete, Path: path}, nil)
}

func (c *Client) call(ctx context.Context, req *Request, dst any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if err := resp.Decode(dst); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, req *Request, body []byte, token string) (*Response, error) {
	u := c.baseURL + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, reader)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNetwork, req.Method, req.Path, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: data}, nil
}

// refresh exchanges the stored refresh token for a new access token.
// Concurrent callers holding the same refresh token share one exchange.
func (c *Client) refresh(ctx context.Context) (string, error) {
	refreshToken, ok, err := c.store.Get(ctx, storage.KeyRefreshToken)
	if err != nil {
		log.Printf("token_refresh read_error=%v", err)
		return "", errNoRefreshToken
	}
	if !ok || refreshToken == "" {
		return "", errNoRefreshToken
	}

	v, err, shared := c.refreshes.Do(refreshToken, func() (any, error) {
		bg := context.WithoutCancel(ctx)
		access, err := c.exchange(bg, refreshToken)
		if err != nil {
			log.Printf("token_refresh status=failed error=%q", err.Error())
			c.expire(bg)
			return "", err
		}
		log.Printf("token_refresh status=ok")
		return access, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		log.Printf("token_refresh shared=true")
	}
	return v.(string), nil
}

func (c *Client) exchange(ctx context.Context, refreshToken string) (string, error) {
	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: refresh: %v", ErrNetwork, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: refresh: %v", ErrNetwork, err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", newAPIError(httpResp.StatusCode, data)
	}

	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if out.Access == "" {
		return "", fmt.Errorf("refresh response without access token")
	}

	if err := c.store.Set(ctx, storage.KeyToken, out.Access); err != nil {
		return "", err
	}
	if out.Refresh != "" {
		if err := c.store.Set(ctx, storage.KeyRefreshToken, out.Refresh); err != nil {
			return "", err
		}
	}
	return out.Access, nil
}

func (c *Client) expire(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		log.Printf("session_expired clear_error=%v", err)
	}
	if c.onExpired != nil {
		c.onExpired(ctx)
	}
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return data, nil
	}
}
