package payment

import (
	"context"
	"errors"
)

var ErrScriptUnavailable = errors.New("checkout script unavailable")

// Widget is the hosted payment surface. EnsureLoaded is the one-shot
// script load; Open blocks until the interaction resolves to exactly one
// Outcome or the context is cancelled.
type Widget interface {
	EnsureLoaded(ctx context.Context) error
	Open(ctx context.Context, session *Session, prefill Prefill) (*Outcome, error)
}
