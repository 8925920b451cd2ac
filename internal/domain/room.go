package domain

import "github.com/shopspring/decimal"

type RoomCategory string

const (
	RoomStandard     RoomCategory = "estandar"
	RoomDeluxe       RoomCategory = "deluxe"
	RoomSuite        RoomCategory = "suite"
	RoomPresidential RoomCategory = "suite_presidencial"
)

type RoomState string

const (
	RoomAvailable   RoomState = "disponible"
	RoomOccupied    RoomState = "ocupada"
	RoomMaintenance RoomState = "mantenimiento"
)

type Room struct {
	ID          int64           `json:"id"`
	Number      string          `json:"numero_habitacion"`
	Category    RoomCategory    `json:"categoria"`
	BasePrice   decimal.Decimal `json:"precio_base"`
	Capacity    int             `json:"capacidad"`
	State       RoomState       `json:"estado"`
	Features    string          `json:"caracteristicas,omitempty"`
	Description string          `json:"descripcion,omitempty"`
	ImageURL    string          `json:"url_imagen_completa,omitempty"`
}

func (r Room) IsAvailable() bool {
	return r.State == RoomAvailable
}
