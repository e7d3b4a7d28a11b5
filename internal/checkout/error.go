package checkout

import "errors"

var (
	// -- Preconditions (no network call was made) --
	ErrValidation        = errors.New("missing customer details or empty cart")
	ErrAttemptInProgress = errors.New("checkout attempt already in progress")
	ErrNoFinalizedOrder  = errors.New("no finalized order to place")

	// -- Hosted payment flow --
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrPaymentFailed      = errors.New("payment failed")
	ErrPaymentCancelled   = errors.New("payment cancelled")

	// ErrPayment covers generic creation and verification failures,
	// including network errors.
	ErrPayment = errors.New("payment processing failed")
)
