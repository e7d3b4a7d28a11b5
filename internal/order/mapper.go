package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire DTOs mirror the backend's JSON contract, which carries amounts as
// plain numbers. Exact decimal values live only on the domain side.

type lineWire struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type payloadWire struct {
	CustomerName  string     `json:"customerName"`
	PhoneNumber   string     `json:"phoneNumber"`
	CartItems     []lineWire `json:"cartItems"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	GrandTotal    float64    `json:"grandTotal"`
	PaymentMethod string     `json:"paymentMethod"`
}

type paymentDetailsWire struct {
	SessionID  string `json:"sessionId"`
	PaymentRef string `json:"paymentReference"`
	Signature  string `json:"signature"`
	Status     string `json:"status"`
}

type orderWire struct {
	OrderID        string              `json:"orderId"`
	CustomerName   string              `json:"customerName"`
	PhoneNumber    string              `json:"phoneNumber"`
	Items          []lineWire          `json:"items"`
	Subtotal       float64             `json:"subtotal"`
	Tax            float64             `json:"tax"`
	GrandTotal     float64             `json:"grandTotal"`
	PaymentMethod  string              `json:"paymentMethod"`
	PaymentDetails *paymentDetailsWire `json:"paymentDetails,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
}

func toPayloadWire(p Payload) payloadWire {
	items := make([]lineWire, 0, len(p.Items))
	for _, l := range p.Items {
		items = append(items, lineWire{
			ItemID:   l.ItemID,
			Name:     l.Name,
			Price:    l.Price.InexactFloat64(),
			Quantity: l.Quantity,
		})
	}

	return payloadWire{
		CustomerName:  p.CustomerName,
		PhoneNumber:   p.PhoneNumber,
		CartItems:     items,
		Subtotal:      p.Subtotal.InexactFloat64(),
		Tax:           p.Tax.InexactFloat64(),
		GrandTotal:    p.GrandTotal.InexactFloat64(),
		PaymentMethod: string(p.PaymentMethod),
	}
}

func fromOrderWire(w orderWire) *Order {
	items := make([]Line, 0, len(w.Items))
	for _, l := range w.Items {
		items = append(items, Line{
			ItemID:   l.ItemID,
			Name:     l.Name,
			Price:    decimal.NewFromFloat(l.Price),
			Quantity: l.Quantity,
		})
	}

	o := &Order{
		OrderID:       w.OrderID,
		CustomerName:  w.CustomerName,
		PhoneNumber:   w.PhoneNumber,
		Items:         items,
		Subtotal:      decimal.NewFromFloat(w.Subtotal),
		Tax:           decimal.NewFromFloat(w.Tax),
		GrandTotal:    decimal.NewFromFloat(w.GrandTotal),
		PaymentMethod: PaymentMethod(w.PaymentMethod),
		CreatedAt:     w.CreatedAt,
	}

	if w.PaymentDetails != nil {
		o.PaymentDetails = &PaymentDetails{
			SessionID:  w.PaymentDetails.SessionID,
			PaymentRef: w.PaymentDetails.PaymentRef,
			Signature:  w.PaymentDetails.Signature,
			Status:     PaymentStatus(w.PaymentDetails.Status),
		}
	}
	return o
}
