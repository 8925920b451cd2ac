package booking

type ConfirmRequest struct {
	Code string `json:"codigo"`
}

type QuoteQuery struct {
	RoomID   int64  `form:"habitacion_id" json:"habitacion_id" validate:"required,gt=0"`
	CheckIn  string `form:"checkin" json:"checkin" validate:"required,datetime=2006-01-02"`
	CheckOut string `form:"checkout" json:"checkout" validate:"required,datetime=2006-01-02"`
}
