package availability

import "errors"

var ErrInvalidCategory = errors.New("category must be table or salon")
