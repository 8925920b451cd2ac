package booking

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidType    = errors.New("type must be room, table or salon")
	ErrLoginRequired  = errors.New("log in to make a reservation")
	ErrCodeTooShort   = errors.New("verification code is incomplete")
	ErrNoSession      = errors.New("no verification code was requested")
	ErrInvalidDates   = errors.New("check-out must be after check-in")
	ErrNoConfirmation = errors.New("no confirmed booking yet")

	// ErrSuperseded is returned to a call whose result arrived after the
	// workflow was dismissed or restarted. The result is dropped.
	ErrSuperseded = errors.New("booking workflow was dismissed")
)

// OccupiedError reports a slot the pre-check found taken.
type OccupiedError struct {
	Type   Type
	FreeAt string
}

func (e *OccupiedError) Error() string {
	return fmt.Sprintf("%s is occupied until %s", e.Type, e.FreeAt)
}
