package checkout

import (
	"posdesk/internal/order"

	"github.com/shopspring/decimal"
)

// TaxRate is the fixed register tax applied to the cart subtotal.
var TaxRate = decimal.NewFromFloat(0.01)

// State is where a checkout attempt currently stands. Finalized,
// RolledBack and Failed are terminal; the service returns to Idle after
// any terminal outcome.
type State string

const (
	StateIdle            State = "IDLE"
	StateValidating      State = "VALIDATING"
	StateOrderCreated    State = "ORDER_CREATED"
	StateAwaitingPayment State = "AWAITING_PAYMENT"
	StateFinalized       State = "FINALIZED"
	StateRolledBack      State = "ROLLED_BACK"
	StateFailed          State = "FAILED"
)

// Customer is the operator-entered customer details for the next order.
type Customer struct {
	Name  string
	Phone string
}

func (c Customer) Complete() bool {
	return c.Name != "" && c.Phone != ""
}

// Attempt is the record of one checkout run: its terminal state, the
// order it produced (if any), and the error it ended with (if any).
type Attempt struct {
	ID     string
	Method order.PaymentMethod
	State  State
	Order  *order.Order
	Err    error
}
