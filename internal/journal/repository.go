package journal

import (
	"context"
	"database/sql"
	"fmt"

	"posdesk/internal/order"

	"github.com/shopspring/decimal"
)

// Repository records finalized orders in the local sales journal and
// answers the dashboard queries over it. The journal is the register's own
// end-of-day record; the backend keeps the authoritative order store.
type Repository interface {
	RecordOrder(ctx context.Context, o *order.Order) error
	TodaySummary(ctx context.Context) (*Summary, error)
	RecentOrders(ctx context.Context, limit int) ([]*order.Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) RecordOrder(ctx context.Context, o *order.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin journal tx: %w", err)
	}
	defer tx.Rollback()

	var paymentRef string
	if o.PaymentDetails != nil {
		paymentRef = o.PaymentDetails.PaymentRef
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO journal_orders
			(order_id, customer_name, phone_number, subtotal, tax, grand_total, payment_method, payment_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		o.OrderID, o.CustomerName, o.PhoneNumber,
		o.Subtotal.String(), o.Tax.String(), o.GrandTotal.String(),
		string(o.PaymentMethod), paymentRef, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record order: %w", err)
	}

	for _, l := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO journal_lines (order_id, item_id, name, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, o.OrderID, l.ItemID, l.Name, l.Price.String(), l.Quantity)
		if err != nil {
			return fmt.Errorf("failed to record order line: %w", err)
		}
	}

	return tx.Commit()
}

func (r *repository) TodaySummary(ctx context.Context) (*Summary, error) {
	query := `
		SELECT COALESCE(SUM(grand_total), 0), COUNT(*)
		FROM journal_orders
		WHERE created_at >= CURRENT_DATE
	`

	var (
		sales string
		count int64
	)
	if err := r.db.QueryRowContext(ctx, query).Scan(&sales, &count); err != nil {
		return nil, fmt.Errorf("failed to load today summary: %w", err)
	}

	total, err := decimal.NewFromString(sales)
	if err != nil {
		return nil, fmt.Errorf("invalid sales total %q: %w", sales, err)
	}

	return &Summary{TodaySales: total, TodayOrders: count}, nil
}

func (r *repository) RecentOrders(ctx context.Context, limit int) ([]*order.Order, error) {
	query := `
		SELECT order_id, customer_name, phone_number, subtotal, tax, grand_total, payment_method, payment_ref, created_at
		FROM journal_orders
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	defer rows.Close()

	var out []*order.Order
	for rows.Next() {
		var (
			o          order.Order
			subtotal   string
			tax        string
			grandTotal string
			method     string
			paymentRef string
		)
		if err := rows.Scan(
			&o.OrderID, &o.CustomerName, &o.PhoneNumber,
			&subtotal, &tax, &grandTotal, &method, &paymentRef, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal order: %w", err)
		}

		if o.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("invalid subtotal %q: %w", subtotal, err)
		}
		if o.Tax, err = decimal.NewFromString(tax); err != nil {
			return nil, fmt.Errorf("invalid tax %q: %w", tax, err)
		}
		if o.GrandTotal, err = decimal.NewFromString(grandTotal); err != nil {
			return nil, fmt.Errorf("invalid grand total %q: %w", grandTotal, err)
		}
		o.PaymentMethod = order.PaymentMethod(method)
		if paymentRef != "" {
			o.PaymentDetails = &order.PaymentDetails{
				PaymentRef: paymentRef,
				Status:     order.PaymentCompleted,
			}
		}

		out = append(out, &o)
	}

	return out, rows.Err()
}
