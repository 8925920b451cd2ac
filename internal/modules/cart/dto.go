package cart

import "github.com/shopspring/decimal"

type AddItemRequest struct {
	DishID   int64 `json:"dish_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// OrderForm is what the checkout screen collects.
type OrderForm struct {
	CustomerName    string `json:"customer_name" validate:"required"`
	CustomerPhone   string `json:"customer_phone" validate:"required"`
	CustomerEmail   string `json:"customer_email" validate:"required,email"`
	DeliveryType    string `json:"delivery_type" validate:"required,oneof=pickup delivery"`
	DeliveryAddress string `json:"delivery_address" validate:"required_if=DeliveryType delivery"`
	Notes           string `json:"notes"`
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=cash card"`
}

type CheckoutResponse struct {
	OrderID int64           `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}
