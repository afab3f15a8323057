// Package predict derives synthetic sentiment predictions from current
// prices. There is no model behind it: the sentiment is drawn at
// random and everything else follows from the chosen branch.
package predict

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"stockpredict/internal/market"
	"stockpredict/internal/stocks"
)

// profile fixes everything a sentiment branch determines: the target
// multiplier band and the canned texts.
type profile struct {
	multMin, multMax float64
	recommendation   string
	reasoning        string
}

var profiles = map[market.Sentiment]profile{
	market.Bullish: {
		multMin:        1.05,
		multMax:        1.20,
		recommendation: "Consider buying or holding this stock.",
		reasoning:      "Technical indicators show upward momentum. RSI suggests the stock is not overbought, and moving averages indicate a positive trend.",
	},
	market.Bearish: {
		multMin:        0.85,
		multMax:        0.95,
		recommendation: "Consider reducing position or selling.",
		reasoning:      "Technical analysis indicates potential downward pressure. Volume trends and moving average crossovers suggest caution.",
	},
	market.Neutral: {
		multMin:        0.97,
		multMax:        1.03,
		recommendation: "Hold current position and monitor closely.",
		reasoning:      "Market conditions are mixed. The stock is trading within a consolidation range with no clear directional bias.",
	},
}

var sentiments = [...]market.Sentiment{market.Bullish, market.Bearish, market.Neutral}

// Engine derives predictions from an injectable random source.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine returns an Engine backed by the given source.
func NewEngine(src rand.Source) *Engine {
	return &Engine{rng: rand.New(src)}
}

// NewEngineSeeded returns an Engine with a fixed seed.
func NewEngineSeeded(seed int64) *Engine {
	return NewEngine(rand.NewSource(seed))
}

// NewEngineFromClock returns an Engine seeded from the current time.
func NewEngineFromClock() *Engine {
	return NewEngineSeeded(time.Now().UnixNano())
}

// Predict assigns a uniformly random sentiment and derives target
// price, confidence and canned texts from it. Confidence is always in
// [60, 89] regardless of sentiment.
func (e *Engine) Predict(symbol string, currentPrice float64) market.Prediction {
	e.mu.Lock()
	sentiment := sentiments[e.rng.Intn(len(sentiments))]
	confidence := 60 + e.rng.Intn(30)
	p := profiles[sentiment]
	multiplier := p.multMin + e.rng.Float64()*(p.multMax-p.multMin)
	e.mu.Unlock()

	return market.Prediction{
		Symbol:         symbol,
		Sentiment:      sentiment,
		Confidence:     confidence,
		TargetPrice:    math.Round(currentPrice*multiplier*100) / 100,
		Recommendation: p.recommendation,
		Reasoning:      p.reasoning,
	}
}

// Service resolves a current price through the quote service and feeds
// it to the engine. Predictions are recomputed on every call; nothing
// is cached, so the same symbol can flip sentiment between requests.
type Service struct {
	engine *Engine
	quotes *stocks.Service
}

// NewService wires an engine to the quote service.
func NewService(engine *Engine, quotes *stocks.Service) *Service {
	return &Service{engine: engine, quotes: quotes}
}

// ForSymbol predicts one symbol from its current quote price.
func (s *Service) ForSymbol(ctx context.Context, symbol string) market.Prediction {
	sym := stocks.NormalizeSymbol(symbol)
	quote := s.quotes.GetQuote(ctx, sym)
	return s.engine.Predict(sym, quote.Price)
}

// ForSymbols predicts all symbols concurrently, output in input order.
func (s *Service) ForSymbols(ctx context.Context, symbols []string) []market.Prediction {
	out := make([]market.Prediction, len(symbols))
	g, ctx := errgroup.WithContext(ctx)
	for i, sym := range symbols {
		i, sym := i, sym
		g.Go(func() error {
			out[i] = s.ForSymbol(ctx, sym)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
