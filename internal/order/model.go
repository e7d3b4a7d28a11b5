package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCash PaymentMethod = "CASH"
	MethodUPI  PaymentMethod = "UPI"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
)

// Line is one ordered item as sent to and echoed by the backend.
type Line struct {
	ItemID   string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Payload is the checkout request built once per attempt from the cart
// snapshot. It is immutable after construction.
type Payload struct {
	CustomerName  string
	PhoneNumber   string
	Items         []Line
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	GrandTotal    decimal.Decimal
	PaymentMethod PaymentMethod
}

// PaymentDetails is attached to an order once payment settles.
type PaymentDetails struct {
	SessionID  string
	PaymentRef string
	Signature  string
	Status     PaymentStatus
}

// Order is the server-assigned order record. It starts pending and either
// gets payment details attached or is deleted by the compensating action.
type Order struct {
	OrderID        string
	CustomerName   string
	PhoneNumber    string
	Items          []Line
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	GrandTotal     decimal.Decimal
	PaymentMethod  PaymentMethod
	PaymentDetails *PaymentDetails
	CreatedAt      time.Time
}
