package payment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"posdesk/internal/logger"

	"go.uber.org/zap"
)

// ScriptLoader fetches the provider's checkout script once per process.
// The first successful load is cached; a failed load is retried on the
// next call.
type ScriptLoader struct {
	mu         sync.Mutex
	loaded     bool
	script     []byte
	url        string
	httpClient *http.Client
}

func NewScriptLoader(url string) *ScriptLoader {
	return &ScriptLoader{
		url: url,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// EnsureLoaded is idempotent: once the script has been fetched it returns
// immediately without touching the network.
func (l *ScriptLoader) EnsureLoaded(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return nil
	}

	log := logger.L().With(zap.String("url", l.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return err
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		log.Error("Checkout script fetch failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrScriptUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error("Checkout script fetch rejected", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d", ErrScriptUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScriptUnavailable, err)
	}

	l.script = body
	l.loaded = true
	log.Info("Checkout script loaded", zap.Int("bytes", len(body)))
	return nil
}

// Script returns the cached script body, empty before the first
// successful load.
func (l *ScriptLoader) Script() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.script
}
