package payment

import "github.com/shopspring/decimal"

// Conversion factor between major and minor currency units (rupees/paise).
var hundred = decimal.NewFromInt(100)

// Session is a hosted-payment-session handle. It lives only for the
// duration of the widget interaction and is never persisted.
type Session struct {
	SessionID string
	Amount    decimal.Decimal
	Currency  string
}

// Verification is submitted to the backend after the widget reports a
// completed payment.
type Verification struct {
	SessionID  string
	PaymentRef string
	Signature  string
	OrderID    string
}

// Prefill carries the customer contact shown inside the hosted widget.
type Prefill struct {
	Name    string
	Contact string
}

// OutcomeKind is how a widget interaction ended.
type OutcomeKind string

const (
	// OutcomeCompleted means the provider reports a successful payment;
	// PaymentRef and Signature are set and await verification.
	OutcomeCompleted OutcomeKind = "COMPLETED"
	// OutcomeFailed is the widget's explicit payment-failed event.
	OutcomeFailed OutcomeKind = "FAILED"
	// OutcomeDismissed means the user closed the widget before paying.
	OutcomeDismissed OutcomeKind = "DISMISSED"
)

// Outcome is the single result the orchestrator awaits from an open
// widget, in place of the provider's three callback hooks.
type Outcome struct {
	Kind       OutcomeKind
	PaymentRef string
	Signature  string
	Reason     string
}
