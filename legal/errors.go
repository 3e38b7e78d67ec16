package legal

import "errors"

var (
	ErrInvalidNotation = errors.New("invalid notation")
	ErrIllegalMove     = errors.New("illegal move")
)
