package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Store holds the selected items and quantities for the active session.
// It is the single owner of cart state: the catalog UI mutates it, the
// checkout flow reads a snapshot of it. All methods are safe for use from
// interleaved event handlers.
type Store struct {
	mu    sync.Mutex
	lines []Line
}

func NewStore() *Store {
	return &Store{}
}

// Add puts an item into the cart, merging with an existing line for the
// same item by summing quantities.
func (s *Store) Add(line Line) error {
	if line.ItemID == "" || line.Name == "" {
		return ErrInvalidItem
	}
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == line.ItemID {
			s.lines[i].Quantity += line.Quantity
			return nil
		}
	}

	s.lines = append(s.lines, line)
	return nil
}

// Increment raises the quantity of an existing line by one.
func (s *Store) Increment(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines[i].Quantity++
			return nil
		}
	}
	return ErrLineNotFound
}

// Decrement lowers the quantity of an existing line by one, removing the
// line entirely when it reaches zero.
func (s *Store) Decrement(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines[i].Quantity--
			if s.lines[i].Quantity <= 0 {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
			}
			return nil
		}
	}
	return ErrLineNotFound
}

// Remove deletes a line regardless of quantity.
func (s *Store) Remove(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Clear empties the cart for the next customer.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Lines returns a copy of the current cart contents.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLines()
}

// Subtotal returns the exact sum of line totals.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotal(s.lines)
}

// Snapshot copies lines and subtotal in one critical section so a checkout
// attempt never observes a torn read.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Lines:    s.copyLines(),
		Subtotal: subtotal(s.lines),
	}
}

func (s *Store) copyLines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}
