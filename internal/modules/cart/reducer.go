package cart

// Action is one of AddItem, RemoveItem, UpdateQuantity, Deduct, Clear or Load.
type Action interface {
	isCartAction()
}

type AddItem struct {
	Item     Item
	Quantity int
}

type RemoveItem struct {
	ID int64
}

type UpdateQuantity struct {
	ID       int64
	Quantity int
}

// Deduct takes the given quantities off the matching lines, dropping lines
// that reach zero. Ids missing from the cart are ignored.
type Deduct struct {
	Items []Item
}

type Clear struct{}

// Load replaces the items wholesale, as on restore.
type Load struct {
	Items []Item
}

func (AddItem) isCartAction()        {}
func (RemoveItem) isCartAction()     {}
func (UpdateQuantity) isCartAction() {}
func (Deduct) isCartAction()         {}
func (Clear) isCartAction()          {}
func (Load) isCartAction()           {}

// Reduce returns the state after applying a. s is never modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddItem:
		if a.Quantity < 1 {
			return s
		}
		items := copyItems(s.Items)
		for i := range items {
			if items[i].ID == a.Item.ID {
				items[i].Quantity += a.Quantity
				return withItems(items)
			}
		}
		it := a.Item
		it.Quantity = a.Quantity
		return withItems(append(items, it))

	case RemoveItem:
		items := make([]Item, 0, len(s.Items))
		for _, it := range s.Items {
			if it.ID != a.ID {
				items = append(items, it)
			}
		}
		return withItems(items)

	case UpdateQuantity:
		if a.Quantity <= 0 {
			return Reduce(s, RemoveItem{ID: a.ID})
		}
		items := copyItems(s.Items)
		for i := range items {
			if items[i].ID == a.ID {
				items[i].Quantity = a.Quantity
			}
		}
		return withItems(items)

	case Deduct:
		taken := make(map[int64]int, len(a.Items))
		for _, it := range a.Items {
			taken[it.ID] += it.Quantity
		}
		items := make([]Item, 0, len(s.Items))
		for _, it := range s.Items {
			it.Quantity -= taken[it.ID]
			if it.Quantity > 0 {
				items = append(items, it)
			}
		}
		return withItems(items)

	case Clear:
		return withItems(nil)

	case Load:
		// stored lines are merged by id and lines without a positive quantity dropped
		next := withItems(nil)
		for _, it := range a.Items {
			if it.Quantity < 1 {
				continue
			}
			next = Reduce(next, AddItem{Item: it, Quantity: it.Quantity})
		}
		return next
	}
	return s
}

func copyItems(items []Item) []Item {
	out := make([]Item, len(items), len(items)+1)
	copy(out, items)
	return out
}
