package domain

import "github.com/shopspring/decimal"

type Dish struct {
	ID              int64           `json:"id"`
	Name            string          `json:"nombre"`
	Description     string          `json:"descripcion,omitempty"`
	Price           decimal.Decimal `json:"precio"`
	Category        string          `json:"categoria,omitempty"`
	CategoryDisplay string          `json:"categoria_display,omitempty"`
	ImageURL        string          `json:"url_imagen_completa,omitempty"`
	Available       bool            `json:"disponible"`
}
