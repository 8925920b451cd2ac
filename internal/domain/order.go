package domain

import "github.com/shopspring/decimal"

type OrderItem struct {
	DishID   int64           `json:"plato_id"`
	Name     string          `json:"nombre"`
	Price    decimal.Decimal `json:"precio"`
	Quantity int             `json:"cantidad"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type Order struct {
	ID              int64             `json:"id,omitempty"`
	Items           []OrderItem       `json:"items"`
	Total           decimal.Decimal   `json:"total"`
	DeliveryType    string            `json:"delivery_type"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerEmail   string            `json:"customer_email"`
	DeliveryAddress string            `json:"delivery_address,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	PaymentMethod   string            `json:"payment_method"`
	Status          ReservationStatus `json:"estado"`
}
