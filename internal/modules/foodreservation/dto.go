package foodreservation

type AddRequest struct {
	DishID int64 `json:"plato_id" validate:"required,gt=0"`
	Extra
}

type ListResponse struct {
	Reservations []Reservation `json:"reservations"`
	Pending      int           `json:"pending"`
	Confirmed    int           `json:"confirmed"`
}
