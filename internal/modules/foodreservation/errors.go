package foodreservation

import "errors"

var (
	ErrNotFound        = errors.New("food reservation not found")
	ErrTerminalStatus  = errors.New("food reservation is already confirmed or cancelled")
	ErrInvalidStatus   = errors.New("invalid reservation status")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidSchedule = errors.New("fecha_programada is not a valid date")
	ErrDishUnavailable = errors.New("dish is not available")
)
