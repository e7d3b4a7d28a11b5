package order

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrCreateRejected = errors.New("order creation rejected")
	ErrDeleteRejected = errors.New("order deletion rejected")
)
