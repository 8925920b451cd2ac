package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrDishUnavailable = errors.New("dish is not available")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrItemNotFound    = errors.New("item is not in the cart")
)
