package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"posdesk/internal/logger"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultTimeout = 15 * time.Second

// The backend rate-limits auth and payment paths at its strict tier
// (2 req/s, burst 5). The client keeps itself under the same budget so a
// busy register never trips the server-side limiter.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5
)

// TokenSource supplies the bearer token attached to backend requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Response is a completed backend exchange. Callers check Status against
// the contract for their endpoint (201 on create, 200 on verify, ...).
type Response struct {
	Status int
	Body   []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Client is the HTTP transport shared by every backend gateway. It owns
// the rate limiter, the circuit breaker, and auth header injection.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*Response]
	tokens     TokenSource
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	breaker := gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
		Name:        "backend",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(limitStrict, burstStrict),
		breaker: breaker,
		tokens:  tokens,
	}
}

// Do issues one request against the backend. Transport failures count
// against the circuit breaker; non-2xx statuses are returned to the caller
// unchanged because each endpoint defines its own success status.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	log := logger.L().With(
		zap.String("method", method),
		zap.String("path", path),
	)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var payload io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			log.Error("Failed to marshal request body", zap.Error(err))
			return nil, err
		}
		payload = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	res, err := c.breaker.Execute(func() (*Response, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		return &Response{Status: resp.StatusCode, Body: bodyBytes}, nil
	})
	if err != nil {
		log.Error("Backend request failed", zap.Error(err))
		return nil, err
	}

	log.Debug("Backend request completed", zap.Int("status", res.Status))
	return res, nil
}
