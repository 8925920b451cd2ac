package reservation

import "errors"

var (
	ErrInvalidType    = errors.New("unknown reservation type")
	ErrNotCancellable = errors.New("reservation is already cancelled")
	ErrNotModifiable  = errors.New("only pending reservations can be modified")
	ErrEmptyPatch     = errors.New("nothing to update")
	ErrCodeTooShort   = errors.New("verification code is too short")
	ErrAllListsFailed = errors.New("could not load any reservation list")
)
