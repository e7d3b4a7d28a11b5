package checkout

import (
	"context"
	"fmt"
	"sync"

	"posdesk/internal/cart"
	"posdesk/internal/logger"
	"posdesk/internal/order"
	"posdesk/internal/payment"
	"posdesk/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service drives a single checkout attempt from validated input to a
// finalized order or a cleanly rolled-back failure. At most one attempt is
// active per session; a second invocation while one is outstanding is
// rejected rather than queued.
type Service struct {
	mu         sync.Mutex
	inProgress bool
	customer   Customer
	finalized  *order.Order

	cart     *cart.Store
	orders   order.Gateway
	payments payment.Gateway
	widget   payment.Widget
	notifier Notifier
	currency string
}

func NewService(
	cartStore *cart.Store,
	orders order.Gateway,
	payments payment.Gateway,
	widget payment.Widget,
	notifier Notifier,
	currency string,
) *Service {
	return &Service{
		cart:     cartStore,
		orders:   orders,
		payments: payments,
		widget:   widget,
		notifier: notifier,
		currency: currency,
	}
}

// SetCustomer records the customer details for the next attempt.
func (s *Service) SetCustomer(name, phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = Customer{Name: name, Phone: phone}
}

// Customer returns the currently entered customer details.
func (s *Service) Customer() Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customer
}

// FinalizedOrder returns the order awaiting the place-order action, or nil.
func (s *Service) FinalizedOrder() *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalized
}

// InProgress reports whether an attempt is outstanding. The UI disables
// the payment buttons while this is true.
func (s *Service) InProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inProgress
}

// CompletePayment runs one checkout attempt for the given method. Cart and
// customer values are snapshotted once at entry; later mutations do not
// affect the attempt. The returned Attempt carries the terminal state.
func (s *Service) CompletePayment(ctx context.Context, method order.PaymentMethod) (*Attempt, error) {
	s.mu.Lock()
	if s.inProgress {
		s.mu.Unlock()
		return nil, ErrAttemptInProgress
	}
	s.inProgress = true
	customer := s.customer
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inProgress = false
		s.mu.Unlock()
	}()

	attempt := &Attempt{
		ID:     uuid.NewString(),
		Method: method,
		State:  StateValidating,
	}

	log := logger.L().With(
		zap.String("attempt_id", attempt.ID),
		zap.String("method", string(method)),
	)

	if method != order.MethodCash && method != order.MethodUPI {
		return s.fail(attempt, StateFailed, fmt.Errorf("%w: unknown payment method %q", ErrValidation, method))
	}

	if !customer.Complete() {
		s.notifier.Error("Please enter customer details")
		return s.fail(attempt, StateFailed, fmt.Errorf("%w: customer details", ErrValidation))
	}

	snap := s.cart.Snapshot()
	if snap.Empty() {
		s.notifier.Error("Your cart is empty")
		return s.fail(attempt, StateFailed, fmt.Errorf("%w: empty cart", ErrValidation))
	}

	subtotal := snap.Subtotal
	tax := subtotal.Mul(TaxRate)
	grandTotal := subtotal.Add(tax)

	lines := make([]order.Line, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, order.Line{
			ItemID:   l.ItemID,
			Name:     l.Name,
			Price:    l.UnitPrice,
			Quantity: l.Quantity,
		})
	}

	payload := order.Payload{
		CustomerName:  customer.Name,
		PhoneNumber:   customer.Phone,
		Items:         lines,
		Subtotal:      subtotal,
		Tax:           tax,
		GrandTotal:    grandTotal,
		PaymentMethod: method,
	}

	ord, err := s.orders.Create(ctx, payload)
	if err != nil {
		// Nothing was created, so nothing to compensate.
		log.Error("Order creation failed", zap.Error(err))
		s.notifier.Error("Payment processing failed")
		return s.fail(attempt, StateFailed, fmt.Errorf("%w: %v", ErrPayment, err))
	}

	attempt.State = StateOrderCreated
	attempt.Order = ord
	log = log.With(zap.String("order_id", ord.OrderID))

	if method == order.MethodCash {
		ord.PaymentDetails = &order.PaymentDetails{Status: order.PaymentCompleted}
		s.setFinalized(ord)
		s.notifier.Success("Cash received")
		attempt.State = StateFinalized
		log.Info("Cash checkout finalized")
		return attempt, nil
	}

	if err := s.widget.EnsureLoaded(ctx); err != nil {
		log.Error("Checkout widget unavailable", zap.Error(err))
		s.compensate(ctx, ord.OrderID)
		s.notifier.Error("Unable to load checkout")
		return s.fail(attempt, StateRolledBack, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err))
	}

	session, err := s.payments.CreateSession(ctx, grandTotal, s.currency)
	if err != nil {
		log.Error("Payment session creation failed", zap.Error(err))
		s.notifier.Error("Payment processing failed")
		return s.fail(attempt, StateFailed, fmt.Errorf("%w: %v", ErrPayment, err))
	}

	attempt.State = StateAwaitingPayment

	outcome, err := s.widget.Open(ctx, session, payment.Prefill{
		Name:    customer.Name,
		Contact: utils.NormalizePhoneIN(customer.Phone),
	})
	if err != nil {
		log.Error("Hosted widget did not resolve", zap.Error(err))
		s.notifier.Error("Payment processing failed")
		return s.fail(attempt, StateFailed, fmt.Errorf("%w: %v", ErrPayment, err))
	}

	switch outcome.Kind {
	case payment.OutcomeCompleted:
		verification := payment.Verification{
			SessionID:  session.SessionID,
			PaymentRef: outcome.PaymentRef,
			Signature:  outcome.Signature,
			OrderID:    ord.OrderID,
		}
		if err := s.payments.Verify(ctx, verification); err != nil {
			// Verification failure leaves the pending order in place;
			// only widget-level failures trigger the compensating delete.
			log.Error("Payment verification failed", zap.Error(err))
			s.notifier.Error("Payment processing failed")
			return s.fail(attempt, StateFailed, fmt.Errorf("%w: %v", ErrPayment, err))
		}

		ord.PaymentDetails = &order.PaymentDetails{
			SessionID:  session.SessionID,
			PaymentRef: outcome.PaymentRef,
			Signature:  outcome.Signature,
			Status:     order.PaymentCompleted,
		}
		s.setFinalized(ord)
		s.notifier.Success("Payment successful")
		attempt.State = StateFinalized
		log.Info("Hosted checkout finalized", zap.String("payment_ref", outcome.PaymentRef))
		return attempt, nil

	case payment.OutcomeFailed:
		log.Warn("Payment failed", zap.String("reason", outcome.Reason))
		s.compensate(ctx, ord.OrderID)
		s.notifier.Error("Payment failed")
		return s.fail(attempt, StateRolledBack, ErrPaymentFailed)

	case payment.OutcomeDismissed:
		log.Info("Payment dismissed by user")
		s.compensate(ctx, ord.OrderID)
		s.notifier.Error("Payment cancelled")
		return s.fail(attempt, StateRolledBack, ErrPaymentCancelled)

	default:
		s.compensate(ctx, ord.OrderID)
		return s.fail(attempt, StateRolledBack, fmt.Errorf("%w: unexpected outcome %q", ErrPayment, outcome.Kind))
	}
}

// PlaceOrder hands the finalized order over for receipt presentation and
// resets customer details and cart for the next customer.
func (s *Service) PlaceOrder() (*order.Order, error) {
	s.mu.Lock()
	if s.inProgress {
		s.mu.Unlock()
		return nil, ErrAttemptInProgress
	}
	if s.finalized == nil {
		s.mu.Unlock()
		return nil, ErrNoFinalizedOrder
	}
	ord := s.finalized
	s.finalized = nil
	s.customer = Customer{}
	s.mu.Unlock()

	s.cart.Clear()
	return ord, nil
}

func (s *Service) setFinalized(ord *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalized = ord
}

// compensate deletes the pending order, best-effort: a failed delete is
// reported but never escalates the original error, and is not retried. An
// orphaned pending order may remain server-side.
func (s *Service) compensate(ctx context.Context, orderID string) {
	if err := s.orders.Delete(ctx, orderID); err != nil {
		logger.L().Error("Compensating deletion failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		s.notifier.Error("Something went wrong")
	}
}

func (s *Service) fail(attempt *Attempt, state State, err error) (*Attempt, error) {
	attempt.State = state
	attempt.Err = err
	return attempt, err
}
