package journal

import (
	"context"
	"testing"
	"time"

	"posdesk/internal/order"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func journalOrder() *order.Order {
	return &order.Order{
		OrderID:      "order-1",
		CustomerName: "Asha",
		PhoneNumber:  "+919876543210",
		Subtotal:     decimal.NewFromInt(200),
		Tax:          decimal.NewFromInt(2),
		GrandTotal:   decimal.NewFromInt(202),
		PaymentMethod: order.MethodCash,
		PaymentDetails: &order.PaymentDetails{
			PaymentRef: "pay-1",
			Status:     order.PaymentCompleted,
		},
		Items: []order.Line{
			{ItemID: "item-1", Name: "Masala Chai", Price: decimal.NewFromInt(100), Quantity: 2},
		},
		CreatedAt: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestRepository_RecordOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		o := journalOrder()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO journal_orders").
			WithArgs(o.OrderID, o.CustomerName, o.PhoneNumber,
				"200", "2", "202", "CASH", "pay-1", o.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO journal_lines").
			WithArgs(o.OrderID, "item-1", "Masala Chai", "100", 2).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err = NewRepository(db).RecordOrder(context.Background(), o)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LineInsertFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		o := journalOrder()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO journal_orders").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO journal_lines").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err = NewRepository(db).RecordOrder(context.Background(), o)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to record order line")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_TodaySummary(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"sum", "count"}).AddRow("1250.50", 7)
		mock.ExpectQuery("SELECT COALESCE").WillReturnRows(rows)

		got, err := NewRepository(db).TodaySummary(context.Background())
		require.NoError(t, err)
		assert.True(t, got.TodaySales.Equal(decimal.RequireFromString("1250.50")),
			"sales = %s", got.TodaySales)
		assert.Equal(t, int64(7), got.TodayOrders)
	})

	t.Run("EmptyJournal", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"sum", "count"}).AddRow("0", 0)
		mock.ExpectQuery("SELECT COALESCE").WillReturnRows(rows)

		got, err := NewRepository(db).TodaySummary(context.Background())
		require.NoError(t, err)
		assert.True(t, got.TodaySales.IsZero())
		assert.Zero(t, got.TodayOrders)
	})
}

func TestRepository_RecentOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"order_id", "customer_name", "phone_number",
		"subtotal", "tax", "grand_total", "payment_method", "payment_ref", "created_at",
	}).
		AddRow("order-2", "Ravi", "+919812345678", "100", "1", "101", "UPI", "pay-2", created).
		AddRow("order-1", "Asha", "+919876543210", "200", "2", "202", "CASH", "", created.Add(-time.Hour))

	mock.ExpectQuery("SELECT .+ FROM journal_orders").
		WithArgs(10).
		WillReturnRows(rows)

	got, err := NewRepository(db).RecentOrders(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "order-2", got[0].OrderID)
	assert.Equal(t, order.MethodUPI, got[0].PaymentMethod)
	require.NotNil(t, got[0].PaymentDetails)
	assert.Equal(t, "pay-2", got[0].PaymentDetails.PaymentRef)
	assert.True(t, got[0].GrandTotal.Equal(decimal.NewFromInt(101)))

	assert.Equal(t, order.MethodCash, got[1].PaymentMethod)
	assert.Nil(t, got[1].PaymentDetails)
}
