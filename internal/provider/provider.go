package provider

import (
	"context"
	"errors"
	"fmt"

	"stockpredict/internal/market"
)

// Provider is a market-data source for single-symbol lookups.
// Implementations return *Error for anything that went wrong on the
// provider side (non-2xx status, transport failure) so callers can
// decide to substitute synthetic data at the smallest possible scope.
type Provider interface {
	Name() string
	FetchQuote(ctx context.Context, symbol string) (market.Quote, error)
	Search(ctx context.Context, query string) (market.SearchResults, error)
}

// Error is a failed provider call. It is always recoverable: the
// aggregation layer replaces it with mock data and never propagates it
// to the HTTP layer.
type Error struct {
	Provider string
	Op       string
	Status   int // HTTP status, 0 when the call never completed
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Provider, e.Op, e.Status)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsProviderError reports whether err originated in a provider call.
func IsProviderError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}
