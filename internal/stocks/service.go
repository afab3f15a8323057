// Package stocks aggregates quotes across symbols, falling back to
// synthetic data per symbol when the provider fails.
package stocks

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"stockpredict/internal/market"
	"stockpredict/internal/provider"
	"stockpredict/internal/synth"
)

// Service resolves quotes, indices, search and chart data. Its read
// operations never fail from the caller's point of view: a provider
// error is replaced with synthetic data at the smallest possible scope.
type Service struct {
	provider provider.Provider
	synth    *synth.Generator
	catalog  Catalog
	log      zerolog.Logger
}

// NewService builds a Service around one provider and one generator.
func NewService(p provider.Provider, g *synth.Generator, catalog Catalog, log zerolog.Logger) *Service {
	return &Service{provider: p, synth: g, catalog: catalog, log: log}
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// GetQuote fetches one quote, substituting a synthetic one on provider
// failure. The display name always comes from the catalog.
func (s *Service) GetQuote(ctx context.Context, symbol string) market.Quote {
	sym := NormalizeSymbol(symbol)
	q, err := s.provider.FetchQuote(ctx, sym)
	if err != nil {
		if provider.IsProviderError(err) {
			s.log.Debug().Str("symbol", sym).Err(err).Msg("provider failed, serving synthetic quote")
		} else {
			s.log.Warn().Str("symbol", sym).Err(err).Msg("unexpected fetch error, serving synthetic quote")
		}
		q = s.synth.Quote(sym)
	}
	q.Name = s.catalog.NameOf(sym)
	return q
}

// GetQuotes fetches all symbols concurrently. The output has one entry
// per input in input order; one symbol's failure never affects another.
func (s *Service) GetQuotes(ctx context.Context, symbols []string) []market.Quote {
	out := make([]market.Quote, len(symbols))
	g, ctx := errgroup.WithContext(ctx)
	for i, sym := range symbols {
		i, sym := i, sym
		g.Go(func() error {
			out[i] = s.GetQuote(ctx, sym)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, fallback happens per symbol
	return out
}

// GetIndices fetches the configured market indices via their proxy
// tickers, falling back per index to synthetic values.
func (s *Service) GetIndices(ctx context.Context) []market.Index {
	out := make([]market.Index, len(s.catalog.Indices))
	g, ctx := errgroup.WithContext(ctx)
	for i, spec := range s.catalog.Indices {
		i, spec := i, spec
		g.Go(func() error {
			q, err := s.provider.FetchQuote(ctx, spec.Proxy)
			if err != nil {
				s.log.Debug().Str("index", spec.Symbol).Err(err).Msg("provider failed, serving synthetic index")
				out[i] = s.synth.Index(spec.Symbol, spec.Name)
				return nil
			}
			out[i] = market.Index{
				Symbol:        spec.Symbol,
				Name:          spec.Name,
				Price:         q.Price,
				Change:        q.Change,
				ChangePercent: q.ChangePercent,
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// GetTrending returns quotes for the trending table.
func (s *Service) GetTrending(ctx context.Context) []market.Quote {
	symbols := make([]string, len(s.catalog.Trending))
	for i, l := range s.catalog.Trending {
		symbols[i] = l.Symbol
	}
	return s.GetQuotes(ctx, symbols)
}

// Search runs the provider's symbol lookup, with the catalog as a
// substring-matching fallback when the provider is unreachable.
func (s *Service) Search(ctx context.Context, query string) market.SearchResults {
	res, err := s.provider.Search(ctx, query)
	if err != nil {
		s.log.Debug().Str("query", query).Err(err).Msg("provider search failed, serving catalog matches")
		return s.catalog.Search(query)
	}
	return res
}

// Chart returns price history for the symbol. History is always
// synthetic; there is no real data path for it.
func (s *Service) Chart(symbol, period string) market.ChartSeries {
	return s.synth.ChartSeries(NormalizeSymbol(symbol), period)
}
