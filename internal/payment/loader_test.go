package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptLoader_EnsureLoaded(t *testing.T) {
	t.Run("Idempotent", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Write([]byte("var Razorpay = function(){};"))
		}))
		defer srv.Close()

		l := NewScriptLoader(srv.URL)

		require.NoError(t, l.EnsureLoaded(context.Background()))
		require.NoError(t, l.EnsureLoaded(context.Background()))
		require.NoError(t, l.EnsureLoaded(context.Background()))

		// Cached after the first success.
		assert.Equal(t, int32(1), hits.Load())
		assert.NotEmpty(t, l.Script())
	})

	t.Run("RetriesAfterFailure", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte("ok"))
		}))
		defer srv.Close()

		l := NewScriptLoader(srv.URL)

		err := l.EnsureLoaded(context.Background())
		require.ErrorIs(t, err, ErrScriptUnavailable)

		// A failed load is not cached; the next call tries again.
		require.NoError(t, l.EnsureLoaded(context.Background()))
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("Unreachable", func(t *testing.T) {
		l := NewScriptLoader("http://127.0.0.1:1/checkout.js")
		assert.ErrorIs(t, l.EnsureLoaded(context.Background()), ErrScriptUnavailable)
	})
}
