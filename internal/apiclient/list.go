package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// DecodeList accepts both a bare JSON array and a paginated
// {"results": [...]} envelope.
func DecodeList(body []byte, dst any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' {
		var page struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return err
		}
		if len(page.Results) == 0 {
			return nil
		}
		return json.Unmarshal(page.Results, dst)
	}
	return json.Unmarshal(trimmed, dst)
}

// List GETs path and decodes the collection into dst.
func (c *Client) List(ctx context.Context, path string, query url.Values, dst any) error {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return err
	}
	return DecodeList(resp.Body, dst)
}
