package order

import (
	"context"
	"fmt"
	"net/http"

	"posdesk/internal/logger"
	"posdesk/internal/transport"

	"go.uber.org/zap"
)

// Gateway creates and deletes backend order records.
type Gateway interface {
	Create(ctx context.Context, payload Payload) (*Order, error)
	Delete(ctx context.Context, orderID string) error
	Latest(ctx context.Context) ([]*Order, error)
}

type gateway struct {
	http *transport.Client
}

func NewGateway(http *transport.Client) Gateway {
	return &gateway{http: http}
}

// Create posts the checkout payload. The backend answers 201 with the
// stored order on success.
func (g *gateway) Create(ctx context.Context, payload Payload) (*Order, error) {
	log := logger.L().With(
		zap.String("customer", payload.CustomerName),
		zap.String("method", string(payload.PaymentMethod)),
		zap.String("grand_total", payload.GrandTotal.String()),
	)

	res, err := g.http.Do(ctx, http.MethodPost, "/orders", toPayloadWire(payload))
	if err != nil {
		return nil, err
	}

	if res.Status != http.StatusCreated {
		log.Error("Order creation rejected",
			zap.Int("status", res.Status),
			zap.ByteString("response", res.Body),
		)
		return nil, fmt.Errorf("%w: status %d", ErrCreateRejected, res.Status)
	}

	var wire orderWire
	if err := res.Decode(&wire); err != nil {
		return nil, err
	}

	log.Info("Order created", zap.String("order_id", wire.OrderID))
	return fromOrderWire(wire), nil
}

// Delete removes a pending order record. Used as the compensating action
// when a later checkout step fails.
func (g *gateway) Delete(ctx context.Context, orderID string) error {
	log := logger.L().With(zap.String("order_id", orderID))

	res, err := g.http.Do(ctx, http.MethodDelete, "/orders/"+orderID, nil)
	if err != nil {
		return err
	}

	switch res.Status {
	case http.StatusNoContent, http.StatusOK:
		log.Info("Order deleted")
		return nil
	case http.StatusNotFound:
		return ErrOrderNotFound
	default:
		log.Error("Order deletion rejected",
			zap.Int("status", res.Status),
			zap.ByteString("response", res.Body),
		)
		return fmt.Errorf("%w: status %d", ErrDeleteRejected, res.Status)
	}
}

// Latest fetches recent orders, newest first.
func (g *gateway) Latest(ctx context.Context) ([]*Order, error) {
	res, err := g.http.Do(ctx, http.MethodGet, "/orders/latest", nil)
	if err != nil {
		return nil, err
	}
	if res.Status != http.StatusOK {
		return nil, fmt.Errorf("latest orders: status %d: %s", res.Status, string(res.Body))
	}

	var wires []orderWire
	if err := res.Decode(&wires); err != nil {
		return nil, err
	}

	out := make([]*Order, 0, len(wires))
	for _, w := range wires {
		out = append(out, fromOrderWire(w))
	}
	return out, nil
}
