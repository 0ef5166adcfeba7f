package specialdate

import "errors"

var (
	ErrSpecialDateNotFound = errors.New("special date not found")
	ErrInvalidInput        = errors.New("invalid special date input")
)
