package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrInvalidItem     = errors.New("invalid cart item")

	// -- Resource State --
	ErrLineNotFound = errors.New("cart line not found")
)
