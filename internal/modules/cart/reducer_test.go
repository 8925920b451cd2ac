package cart

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id int64, price string) Item {
	return Item{ID: id, Name: "dish", Price: decimal.RequireFromString(price)}
}

func assertDerived(t *testing.T, s State) {
	t.Helper()
	total := decimal.Zero
	count := 0
	for _, it := range s.Items {
		require.GreaterOrEqual(t, it.Quantity, 1)
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		count += it.Quantity
	}
	assert.True(t, total.Equal(s.Total), "total %s != %s", s.Total, total)
	assert.Equal(t, count, s.ItemCount)
}

func TestReduce_AddMergesByIdentity(t *testing.T) {
	s := Reduce(State{}, AddItem{Item: item(1, "12.50"), Quantity: 2})
	s = Reduce(s, AddItem{Item: item(1, "12.50"), Quantity: 3})

	require.Len(t, s.Items, 1)
	assert.Equal(t, 5, s.Items[0].Quantity)
	assert.Equal(t, 5, s.ItemCount)
	assert.True(t, s.Total.Equal(decimal.RequireFromString("62.50")))
}

func TestReduce_UpdateToZeroOrNegativeRemoves(t *testing.T) {
	base := Reduce(State{}, AddItem{Item: item(1, "10"), Quantity: 1})
	base = Reduce(base, AddItem{Item: item(2, "4.25"), Quantity: 2})

	removed := Reduce(base, RemoveItem{ID: 1})
	assert.Equal(t, removed, Reduce(base, UpdateQuantity{ID: 1, Quantity: 0}))
	assert.Equal(t, removed, Reduce(base, UpdateQuantity{ID: 1, Quantity: -1}))
	assert.Equal(t, 2, removed.ItemCount)
}

func TestReduce_RemoveAbsentIsNoop(t *testing.T) {
	base := Reduce(State{}, AddItem{Item: item(1, "10"), Quantity: 1})
	next := Reduce(base, RemoveItem{ID: 99})
	assert.Equal(t, base.Items, next.Items)
	assert.True(t, base.Total.Equal(next.Total))
}

func TestReduce_DeductLeavesRemainder(t *testing.T) {
	s := Reduce(State{}, AddItem{Item: item(1, "10"), Quantity: 3})
	s = Reduce(s, AddItem{Item: item(2, "4.25"), Quantity: 1})
	s = Reduce(s, AddItem{Item: item(3, "2"), Quantity: 1})

	ordered := []Item{item(1, "10"), item(2, "4.25"), item(9, "1")}
	ordered[0].Quantity = 2
	ordered[1].Quantity = 1
	ordered[2].Quantity = 5

	next := Reduce(s, Deduct{Items: ordered})
	require.Len(t, next.Items, 2)
	assert.Equal(t, int64(1), next.Items[0].ID)
	assert.Equal(t, 1, next.Items[0].Quantity)
	assert.Equal(t, int64(3), next.Items[1].ID)
	assertDerived(t, next)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	base := Reduce(State{}, AddItem{Item: item(1, "10"), Quantity: 1})
	_ = Reduce(base, UpdateQuantity{ID: 1, Quantity: 7})
	_ = Reduce(base, AddItem{Item: item(1, "10"), Quantity: 2})
	assert.Equal(t, 1, base.Items[0].Quantity)
}

func TestReduce_ClearZeroes(t *testing.T) {
	s := Reduce(State{}, AddItem{Item: item(1, "10"), Quantity: 3})
	s = Reduce(s, Clear{})
	assert.Empty(t, s.Items)
	assert.True(t, s.Total.IsZero())
	assert.Equal(t, 0, s.ItemCount)
}

func TestReduce_LoadRecomputesAndDropsInvalid(t *testing.T) {
	s := Reduce(State{}, Load{Items: []Item{
		{ID: 1, Price: decimal.RequireFromString("3"), Quantity: 2},
		{ID: 2, Price: decimal.RequireFromString("5"), Quantity: 0},
		{ID: 1, Price: decimal.RequireFromString("3"), Quantity: 1},
	}})
	require.Len(t, s.Items, 1)
	assert.Equal(t, 3, s.ItemCount)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(9)))
}

func TestReduce_DerivedValuesHoldForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	prices := []string{"1.10", "2.25", "9.99", "15", "0.5"}

	s := Reduce(State{}, Clear{})
	for i := 0; i < 500; i++ {
		id := int64(rng.Intn(len(prices)))
		switch rng.Intn(4) {
		case 0:
			s = Reduce(s, AddItem{Item: item(id, prices[id]), Quantity: rng.Intn(4) + 1})
		case 1:
			s = Reduce(s, RemoveItem{ID: id})
		case 2:
			s = Reduce(s, UpdateQuantity{ID: id, Quantity: rng.Intn(6) - 2})
		case 3:
			taken := item(id, prices[id])
			taken.Quantity = rng.Intn(3) + 1
			s = Reduce(s, Deduct{Items: []Item{taken}})
		}
		assertDerived(t, s)
	}
}
