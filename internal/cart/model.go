package cart

import (
	"github.com/shopspring/decimal"
)

// Line is one selected item in the session's cart.
type Line struct {
	ItemID    string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total returns unit price times quantity, unrounded.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Snapshot is a point-in-time copy of the cart taken at the start of a
// checkout attempt. Later cart mutations do not affect it.
type Snapshot struct {
	Lines    []Line
	Subtotal decimal.Decimal
}

// Empty reports whether the snapshot holds no lines.
func (s Snapshot) Empty() bool {
	return len(s.Lines) == 0
}
