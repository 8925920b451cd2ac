// Package cart holds the restaurant cart: a pure reducer over an immutable
// snapshot, the owner that persists it, and the checkout that turns it into
// an order.
package cart

import (
	"github.com/shopspring/decimal"

	"hotelindigo/internal/domain"
)

// Item is one cart line. Quantity is at least 1; a line brought to 0 is removed.
type Item struct {
	ID              int64           `json:"id"`
	Name            string          `json:"nombre"`
	Price           decimal.Decimal `json:"precio"`
	Quantity        int             `json:"quantity"`
	CategoryDisplay string          `json:"categoria_display,omitempty"`
	ImageURL        string          `json:"url_imagen_completa,omitempty"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemFromDish copies the display fields of a dish into a line of quantity 0.
// The reducer sets the quantity.
func ItemFromDish(d domain.Dish) Item {
	return Item{
		ID:              d.ID,
		Name:            d.Name,
		Price:           d.Price,
		CategoryDisplay: d.CategoryDisplay,
		ImageURL:        d.ImageURL,
	}
}

// State is also the persisted payload. Total and ItemCount are derived from
// Items and recomputed on every transition, including restore.
type State struct {
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

func (s State) Empty() bool {
	return len(s.Items) == 0
}

func (s State) Find(id int64) (Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

func withItems(items []Item) State {
	if items == nil {
		items = []Item{}
	}
	total := decimal.Zero
	count := 0
	for _, it := range items {
		total = total.Add(it.Subtotal())
		count += it.Quantity
	}
	return State{Items: items, Total: total, ItemCount: count}
}
