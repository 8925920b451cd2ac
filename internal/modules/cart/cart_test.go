package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelindigo/internal/storage"
)

type failingStore struct {
	*storage.MemoryStore
	failSet bool
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func TestNew_RestoresPersistedCart(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c := New(ctx, store)
	_, err := c.Add(ctx, item(1, "7.5"), 2)
	require.NoError(t, err)

	restored := New(ctx, store)
	s := restored.Snapshot()
	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.ItemCount)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(15)))
}

func TestNew_IgnoresPersistedDerivedValues(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeyCart,
		`{"items":[{"id":4,"nombre":"Sopa","precio":"3.00","quantity":2}],"total":"999","itemCount":40}`))

	s := New(ctx, store).Snapshot()
	assert.Equal(t, 2, s.ItemCount)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(6)))
}

func TestNew_CorruptedPayloadEqualsNoPayload(t *testing.T) {
	ctx := context.Background()
	empty := New(ctx, storage.NewMemoryStore()).Snapshot()

	for _, raw := range []string{"{not json", `{"items":"nope"}`, "[1,2", "null"} {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, storage.KeyCart, raw))
		assert.Equal(t, empty, New(ctx, store).Snapshot(), raw)
	}
}

func TestCart_AddRejectsQuantityBelowOne(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, storage.NewMemoryStore())
	_, err := c.Add(ctx, item(1, "1"), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.True(t, c.Snapshot().Empty())
}

func TestCart_FailedWriteKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: storage.NewMemoryStore()}
	c := New(ctx, store)
	before, err := c.Add(ctx, item(1, "2"), 1)
	require.NoError(t, err)

	store.failSet = true
	got, err := c.Add(ctx, item(2, "3"), 1)
	require.Error(t, err)
	assert.Equal(t, before, got)
	assert.Equal(t, before, c.Snapshot())
}

func TestCart_OnChangeSeesEveryTransition(t *testing.T) {
	ctx := context.Background()
	var seen []int
	c := New(ctx, storage.NewMemoryStore(), WithOnChange(func(s State) {
		seen = append(seen, s.ItemCount)
	}))

	_, _ = c.Add(ctx, item(1, "2"), 2)
	_, _ = c.UpdateQuantity(ctx, 1, 5)
	_, _ = c.Clear(ctx)
	assert.Equal(t, []int{2, 5, 0}, seen)
}
