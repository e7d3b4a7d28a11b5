package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestClient_Do(t *testing.T) {
	t.Run("AuthHeaderAttached", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, staticTokens("tok-123"))

		res, err := c.Do(context.Background(), http.MethodGet, "/items", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Status)
		assert.Equal(t, "Bearer tok-123", gotAuth)
	})

	t.Run("NoTokenNoHeader", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
		}))
		defer srv.Close()

		c := NewClient(srv.URL, staticTokens(""))

		_, err := c.Do(context.Background(), http.MethodGet, "/items", nil)
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})

	t.Run("BodyRoundTrip", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var in map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
		}))
		defer srv.Close()

		c := NewClient(srv.URL, nil)

		res, err := c.Do(context.Background(), http.MethodPost, "/echo", map[string]string{"msg": "hi"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.Status)

		var out map[string]string
		require.NoError(t, res.Decode(&out))
		assert.Equal(t, "hi", out["echo"])
	})

	t.Run("NonSuccessStatusPassedThrough", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusConflict)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, nil)

		// The contract for each endpoint decides what a failure status
		// means; the transport does not turn it into an error.
		res, err := c.Do(context.Background(), http.MethodPost, "/orders", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, res.Status)
		assert.Contains(t, string(res.Body), "nope")
	})

	t.Run("BreakerOpensAfterConsecutiveFailures", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse every connection

		c := NewClient(srv.URL, nil)

		var lastErr error
		for i := 0; i < 6; i++ {
			_, lastErr = c.Do(context.Background(), http.MethodGet, "/items", nil)
			require.Error(t, lastErr)
		}

		assert.ErrorContains(t, lastErr, "circuit breaker is open")
	})
}
