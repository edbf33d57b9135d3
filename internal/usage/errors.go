package usage

import "errors"

// ErrInvalidRecord indicates a record without provider or status.
var ErrInvalidRecord = errors.New("usage record requires provider and status")
