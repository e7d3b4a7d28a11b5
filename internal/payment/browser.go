package payment

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"posdesk/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BrowserWidget opens the hosted checkout in the operator's browser and
// resolves the interaction through localhost return paths: the provider's
// success handler, payment.failed event, and modal dismissal each land on
// their own route, which becomes the single Outcome the orchestrator
// awaits.
type BrowserWidget struct {
	loader      *ScriptLoader
	keyID       string
	displayName string
	addr        string
	openBrowser func(url string) error
}

func NewBrowserWidget(loader *ScriptLoader, keyID, displayName, addr string) *BrowserWidget {
	return &BrowserWidget{
		loader:      loader,
		keyID:       keyID,
		displayName: displayName,
		addr:        addr,
		openBrowser: openBrowser,
	}
}

func (w *BrowserWidget) EnsureLoaded(ctx context.Context) error {
	return w.loader.EnsureLoaded(ctx)
}

// Open serves the checkout page, points the browser at it, and blocks
// until one of the three return paths fires or the context ends.
func (w *BrowserWidget) Open(ctx context.Context, session *Session, prefill Prefill) (*Outcome, error) {
	outcomes := make(chan Outcome, 1)

	r := chi.NewRouter()
	r.Get("/pay", w.servePage(session, prefill))
	r.Get("/pay/success", func(rw http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		outcomes <- Outcome{
			Kind:       OutcomeCompleted,
			PaymentRef: q.Get("reference"),
			Signature:  q.Get("signature"),
		}
		fmt.Fprint(rw, "Payment received. You can close this window.")
	})
	r.Get("/pay/failure", func(rw http.ResponseWriter, req *http.Request) {
		outcomes <- Outcome{
			Kind:   OutcomeFailed,
			Reason: req.URL.Query().Get("reason"),
		}
		fmt.Fprint(rw, "Payment failed. You can close this window.")
	})
	r.Get("/pay/cancel", func(rw http.ResponseWriter, req *http.Request) {
		outcomes <- Outcome{Kind: OutcomeDismissed}
		fmt.Fprint(rw, "Payment cancelled. You can close this window.")
	})

	ln, err := net.Listen("tcp", w.addr)
	if err != nil {
		return nil, fmt.Errorf("callback listener: %w", err)
	}

	srv := &http.Server{Handler: r}
	go func() {
		if serveErr := srv.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.L().Error("Callback listener stopped", zap.Error(serveErr))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	pageURL := fmt.Sprintf("http://%s/pay", ln.Addr().String())
	logger.L().Info("Opening hosted checkout",
		zap.String("url", pageURL),
		zap.String("session_id", session.SessionID),
	)

	if err := w.openBrowser(pageURL); err != nil {
		return nil, fmt.Errorf("open browser: %w", err)
	}

	select {
	case out := <-outcomes:
		return &out, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

var pageTemplate = template.Must(template.New("checkout").Parse(`<!doctype html>
<html>
<head><title>{{.DisplayName}}</title></head>
<body>
<script>{{.Script}}</script>
<script>
var options = {
  key: "{{.KeyID}}",
  amount: {{.AmountMinor}},
  currency: "{{.Currency}}",
  order_id: "{{.SessionID}}",
  name: "{{.DisplayName}}",
  description: "Order payment",
  prefill: { name: "{{.PrefillName}}", contact: "{{.PrefillContact}}" },
  theme: { color: "#3399cc" },
  handler: function (resp) {
    window.location = "/pay/success?reference=" + encodeURIComponent(resp.razorpay_payment_id) +
      "&signature=" + encodeURIComponent(resp.razorpay_signature);
  },
  modal: {
    ondismiss: function () { window.location = "/pay/cancel"; }
  }
};
var rzp = new Razorpay(options);
rzp.on("payment.failed", function (resp) {
  window.location = "/pay/failure?reason=" + encodeURIComponent(resp.error.description);
});
rzp.open();
</script>
</body>
</html>`))

func (w *BrowserWidget) servePage(session *Session, prefill Prefill) http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		rw.Header().Set("Content-Type", "text/html; charset=utf-8")

		data := struct {
			Script         template.JS
			KeyID          string
			AmountMinor    int64
			Currency       string
			SessionID      string
			DisplayName    string
			PrefillName    string
			PrefillContact string
		}{
			Script:         template.JS(w.loader.Script()),
			KeyID:          w.keyID,
			AmountMinor:    session.Amount.Mul(hundred).IntPart(),
			Currency:       session.Currency,
			SessionID:      session.SessionID,
			DisplayName:    w.displayName,
			PrefillName:    prefill.Name,
			PrefillContact: prefill.Contact,
		}

		if err := pageTemplate.Execute(rw, data); err != nil {
			logger.L().Error("Failed rendering checkout page", zap.Error(err))
		}
	}
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
