package domain

import "github.com/shopspring/decimal"

type Salon struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nombre"`
	Capacity    int             `json:"capacidad"`
	BasePrice   decimal.Decimal `json:"precio_base"`
	State       string          `json:"estado,omitempty"`
	Description string          `json:"descripcion,omitempty"`
	ImageURL    string          `json:"url_imagen_completa,omitempty"`
}
