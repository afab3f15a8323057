// Package synth produces plausible-looking synthetic market data.
// It stands in for the provider whenever a call fails, and is the only
// source for chart history (no real historical data path exists).
package synth

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"stockpredict/internal/market"
)

// Generator draws synthetic quotes, index values and chart series from
// an injectable random source. Seed it from the clock for live noise,
// or with a fixed value for reproducible output.
type Generator struct {
	mu  sync.Mutex // rand.Rand is not goroutine-safe; fetches fan out
	rng *rand.Rand
}

// New returns a Generator backed by the given source.
func New(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return New(rand.NewSource(seed))
}

// NewFromClock returns a Generator seeded from the current time.
func NewFromClock() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// Quote generates a synthetic quote for symbol. The base price is
// uniform in [100, 300) and the change in [-5, 5); the daily range is
// derived so that low <= price <= high always holds. Name is left as
// the symbol; the aggregation layer owns name resolution.
func (g *Generator) Quote(symbol string) market.Quote {
	g.mu.Lock()
	basePrice := 100 + g.rng.Float64()*200
	change := (g.rng.Float64() - 0.5) * 10
	g.mu.Unlock()
	changePercent := change / basePrice * 100

	return market.Quote{
		Symbol:        symbol,
		Name:          symbol,
		Price:         round2(basePrice),
		Change:        round2(change),
		ChangePercent: round2(changePercent),
		High:          round2(basePrice + math.Abs(change)*1.5),
		Low:           round2(basePrice - math.Abs(change)*1.5),
		Open:          round2(basePrice - change*0.5),
		PreviousClose: round2(basePrice - change),
	}
}

// Index generates synthetic index values in the usual index range,
// base uniform in [4000, 5000) and change in [-25, 25).
func (g *Generator) Index(symbol, name string) market.Index {
	g.mu.Lock()
	basePrice := 4000 + g.rng.Float64()*1000
	change := (g.rng.Float64() - 0.5) * 50
	g.mu.Unlock()

	return market.Index{
		Symbol:        symbol,
		Name:          name,
		Price:         round2(basePrice),
		Change:        round2(change),
		ChangePercent: round2(change / basePrice * 100),
	}
}

type periodSpec struct {
	points   int
	interval time.Duration
}

var periods = map[string]periodSpec{
	"1D": {points: 24, interval: time.Hour},
	"1W": {points: 7, interval: 24 * time.Hour},
	"1M": {points: 30, interval: 24 * time.Hour},
	"3M": {points: 90, interval: 24 * time.Hour},
	"1Y": {points: 52, interval: 7 * 24 * time.Hour},
}

// ChartSeries generates a random-walk price history for the period.
// Unrecognized periods fall back to the 1M parameters. The series has
// points+1 samples with strictly ascending timestamps ending at now.
func (g *Generator) ChartSeries(symbol, period string) market.ChartSeries {
	spec, ok := periods[period]
	if !ok {
		spec = periods["1M"]
	}

	now := time.Now().UnixMilli()
	prices := make([]float64, 0, spec.points+1)
	timestamps := make([]int64, 0, spec.points+1)

	g.mu.Lock()
	price := 100 + g.rng.Float64()*100
	for i := spec.points; i >= 0; i-- {
		// Slight upward drift: steps are uniform in [-1.44, 1.56).
		price += (g.rng.Float64() - 0.48) * 3
		if price < 50 {
			price = 50
		}
		prices = append(prices, round2(price))
		timestamps = append(timestamps, now-int64(i)*spec.interval.Milliseconds())
	}
	g.mu.Unlock()

	return market.ChartSeries{Prices: prices, Timestamps: timestamps}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
