package query

import (
	"context"

	"github.com/LoryBug/mbel/internal/result"
)

// Query is one request against a built Engine. Every public query in §4.4
// is a Query implementation, so the Engine's Execute method (engine.go)
// stays a single dispatch point regardless of how many query shapes get
// added.
type Query interface {
	Execute(ctx context.Context, e *Engine) (result.Result, error)
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
