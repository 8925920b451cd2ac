package domain

type Table struct {
	ID       int64  `json:"id"`
	Number   int    `json:"numero_mesa"`
	Capacity int    `json:"capacidad"`
	Location string `json:"ubicacion,omitempty"`
	State    string `json:"estado,omitempty"`
}
