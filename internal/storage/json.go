package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// LoadJSON decodes the value stored under key into dst. found is false when
// the key is absent. A value that does not decode returns ErrMalformed and
// leaves dst untouched.
func LoadJSON(ctx context.Context, s Store, key string, dst any) (found bool, err error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok || raw == "" {
		return false, nil
	}
	if !json.Valid([]byte(raw)) {
		return false, fmt.Errorf("%s: %w", key, ErrMalformed)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("%s: %w: %v", key, ErrMalformed, err)
	}
	return true, nil
}

func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}
