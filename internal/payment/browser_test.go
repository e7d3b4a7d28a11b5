package payment

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedWidget(t *testing.T) *BrowserWidget {
	t.Helper()

	scriptSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("var Razorpay = function(){};"))
	}))
	t.Cleanup(scriptSrv.Close)

	loader := NewScriptLoader(scriptSrv.URL)
	require.NoError(t, loader.EnsureLoaded(context.Background()))

	return NewBrowserWidget(loader, "rzp_test_key", "My Retail Shop", "127.0.0.1:0")
}

func testSession() *Session {
	return &Session{
		SessionID: "sess_9",
		Amount:    decimal.NewFromInt(202),
		Currency:  "INR",
	}
}

func TestBrowserWidget_Open(t *testing.T) {
	t.Run("Completed", func(t *testing.T) {
		w := loadedWidget(t)

		var page string
		w.openBrowser = func(pageURL string) error {
			go func() {
				resp, err := http.Get(pageURL)
				if err != nil {
					return
				}
				body, _ := io.ReadAll(resp.Body)
				resp.Body.Close()
				page = string(body)

				base := strings.TrimSuffix(pageURL, "/pay")
				http.Get(base + "/pay/success?reference=pay_1&signature=sig_1")
			}()
			return nil
		}

		out, err := w.Open(context.Background(), testSession(), Prefill{Name: "Ravi", Contact: "+919876543210"})
		require.NoError(t, err)
		assert.Equal(t, OutcomeCompleted, out.Kind)
		assert.Equal(t, "pay_1", out.PaymentRef)
		assert.Equal(t, "sig_1", out.Signature)

		// The served page embeds the session and the cached script.
		assert.Contains(t, page, "sess_9")
		assert.Contains(t, page, "rzp_test_key")
		assert.Contains(t, page, "var Razorpay")
		assert.Contains(t, page, "20200")
	})

	t.Run("Dismissed", func(t *testing.T) {
		w := loadedWidget(t)
		w.openBrowser = func(pageURL string) error {
			go http.Get(strings.TrimSuffix(pageURL, "/pay") + "/pay/cancel")
			return nil
		}

		out, err := w.Open(context.Background(), testSession(), Prefill{})
		require.NoError(t, err)
		assert.Equal(t, OutcomeDismissed, out.Kind)
	})

	t.Run("Failed", func(t *testing.T) {
		w := loadedWidget(t)
		w.openBrowser = func(pageURL string) error {
			go http.Get(strings.TrimSuffix(pageURL, "/pay") + "/pay/failure?reason=card+declined")
			return nil
		}

		out, err := w.Open(context.Background(), testSession(), Prefill{})
		require.NoError(t, err)
		assert.Equal(t, OutcomeFailed, out.Kind)
		assert.Equal(t, "card declined", out.Reason)
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		w := loadedWidget(t)
		w.openBrowser = func(string) error { return nil }

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := w.Open(ctx, testSession(), Prefill{})
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
