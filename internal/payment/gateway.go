package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"posdesk/internal/logger"
	"posdesk/internal/transport"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrVerifyRejected = errors.New("payment verification rejected")

// Gateway opens hosted payment sessions on the backend and verifies
// completed payments against it.
type Gateway interface {
	CreateSession(ctx context.Context, amount decimal.Decimal, currency string) (*Session, error)
	Verify(ctx context.Context, v Verification) error
}

type gateway struct {
	http *transport.Client
}

func NewGateway(http *transport.Client) Gateway {
	return &gateway{http: http}
}

type createSessionWire struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// The provider returns the session amount in minor units (paise).
type sessionWire struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type verifyWire struct {
	SessionID  string `json:"sessionId"`
	PaymentRef string `json:"paymentReference"`
	Signature  string `json:"signature"`
	OrderID    string `json:"orderId"`
}

// CreateSession opens a provider session sized to the grand total.
func (g *gateway) CreateSession(ctx context.Context, amount decimal.Decimal, currency string) (*Session, error) {
	log := logger.L().With(
		zap.String("amount", amount.String()),
		zap.String("currency", currency),
	)

	res, err := g.http.Do(ctx, http.MethodPost, "/payments/create-order", createSessionWire{
		Amount:   amount.InexactFloat64(),
		Currency: currency,
	})
	if err != nil {
		return nil, err
	}

	if res.Status != http.StatusCreated && res.Status != http.StatusOK {
		log.Error("Session creation rejected",
			zap.Int("status", res.Status),
			zap.ByteString("response", res.Body),
		)
		return nil, fmt.Errorf("create payment session: status %d: %s", res.Status, string(res.Body))
	}

	var wire sessionWire
	if err := res.Decode(&wire); err != nil {
		return nil, err
	}

	log.Info("Payment session created", zap.String("session_id", wire.ID))

	return &Session{
		SessionID: wire.ID,
		Amount:    decimal.NewFromInt(wire.Amount).Div(hundred),
		Currency:  wire.Currency,
	}, nil
}

// Verify submits the provider's payment reference and signature. The
// backend answers 200 once the signature checks out and the order record
// is marked paid.
func (g *gateway) Verify(ctx context.Context, v Verification) error {
	log := logger.L().With(
		zap.String("session_id", v.SessionID),
		zap.String("order_id", v.OrderID),
	)

	res, err := g.http.Do(ctx, http.MethodPost, "/payments/verify", verifyWire{
		SessionID:  v.SessionID,
		PaymentRef: v.PaymentRef,
		Signature:  v.Signature,
		OrderID:    v.OrderID,
	})
	if err != nil {
		return err
	}

	if res.Status != http.StatusOK {
		log.Error("Verification rejected",
			zap.Int("status", res.Status),
			zap.ByteString("response", res.Body),
		)
		return fmt.Errorf("%w: status %d", ErrVerifyRejected, res.Status)
	}

	log.Info("Payment verified")
	return nil
}
