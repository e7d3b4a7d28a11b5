package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"posdesk/internal/transport"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_CreateSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var got createSessionWire
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/payments/create-order", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.WriteHeader(http.StatusCreated)
			// The provider answers in minor units.
			json.NewEncoder(w).Encode(sessionWire{
				ID:       "sess_9",
				Amount:   20200,
				Currency: "INR",
				Status:   "created",
			})
		}))
		defer srv.Close()

		g := NewGateway(transport.NewClient(srv.URL, nil))

		sess, err := g.CreateSession(context.Background(), decimal.NewFromInt(202), "INR")
		require.NoError(t, err)
		assert.Equal(t, "sess_9", sess.SessionID)
		assert.True(t, sess.Amount.Equal(decimal.NewFromInt(202)))
		assert.Equal(t, "INR", sess.Currency)

		assert.Equal(t, 202.0, got.Amount)
		assert.Equal(t, "INR", got.Currency)
	})

	t.Run("ProviderError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "provider unavailable", http.StatusBadGateway)
		}))
		defer srv.Close()

		g := NewGateway(transport.NewClient(srv.URL, nil))

		_, err := g.CreateSession(context.Background(), decimal.NewFromInt(202), "INR")
		require.Error(t, err)
	})
}

func TestGateway_Verify(t *testing.T) {
	verification := Verification{
		SessionID:  "sess_9",
		PaymentRef: "pay_123",
		Signature:  "sig_abc",
		OrderID:    "ord-1",
	}

	t.Run("Success", func(t *testing.T) {
		var got verifyWire
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/payments/verify", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		g := NewGateway(transport.NewClient(srv.URL, nil))

		require.NoError(t, g.Verify(context.Background(), verification))
		assert.Equal(t, "sess_9", got.SessionID)
		assert.Equal(t, "pay_123", got.PaymentRef)
		assert.Equal(t, "sig_abc", got.Signature)
		assert.Equal(t, "ord-1", got.OrderID)
	})

	t.Run("Rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad signature", http.StatusBadRequest)
		}))
		defer srv.Close()

		g := NewGateway(transport.NewClient(srv.URL, nil))
		assert.ErrorIs(t, g.Verify(context.Background(), verification), ErrVerifyRejected)
	})
}
