package stocks

import (
	"sort"
	"strings"

	"stockpredict/internal/market"
)

// IndexSpec ties a display index to the tradeable proxy ticker used
// for the provider call (the provider has no index quote endpoint).
type IndexSpec struct {
	Symbol string
	Name   string
	Proxy  string
}

// Listing is a symbol with its display name.
type Listing struct {
	Symbol string
	Name   string
}

// Catalog is the static reference data injected into the service at
// construction. It is read-only after process start; tests substitute
// their own fixtures.
type Catalog struct {
	Names    map[string]string
	Trending []Listing
	Indices  []IndexSpec
}

// DefaultCatalog returns the built-in ticker tables.
func DefaultCatalog() Catalog {
	return Catalog{
		Names: map[string]string{
			"AAPL":  "Apple Inc.",
			"MSFT":  "Microsoft Corporation",
			"GOOGL": "Alphabet Inc.",
			"AMZN":  "Amazon.com Inc.",
			"TSLA":  "Tesla Inc.",
			"NVDA":  "NVIDIA Corporation",
			"META":  "Meta Platforms Inc.",
			"NFLX":  "Netflix Inc.",
			"JPM":   "JPMorgan Chase & Co.",
			"V":     "Visa Inc.",
			"WMT":   "Walmart Inc.",
			"DIS":   "Walt Disney Company",
			"PYPL":  "PayPal Holdings Inc.",
			"INTC":  "Intel Corporation",
			"AMD":   "Advanced Micro Devices",
			"CRM":   "Salesforce Inc.",
			"ORCL":  "Oracle Corporation",
			"CSCO":  "Cisco Systems Inc.",
			"ADBE":  "Adobe Inc.",
			"QCOM":  "Qualcomm Inc.",
		},
		Trending: []Listing{
			{Symbol: "AAPL", Name: "Apple Inc."},
			{Symbol: "MSFT", Name: "Microsoft Corporation"},
			{Symbol: "GOOGL", Name: "Alphabet Inc."},
			{Symbol: "AMZN", Name: "Amazon.com Inc."},
			{Symbol: "TSLA", Name: "Tesla Inc."},
			{Symbol: "NVDA", Name: "NVIDIA Corporation"},
			{Symbol: "META", Name: "Meta Platforms Inc."},
			{Symbol: "NFLX", Name: "Netflix Inc."},
		},
		Indices: []IndexSpec{
			{Symbol: "^GSPC", Name: "S&P 500", Proxy: "SPY"},
			{Symbol: "^DJI", Name: "Dow Jones", Proxy: "DIA"},
			{Symbol: "^IXIC", Name: "NASDAQ", Proxy: "QQQ"},
		},
	}
}

// NameOf resolves a display name; unknown tickers echo the symbol.
func (c Catalog) NameOf(symbol string) string {
	if name, ok := c.Names[symbol]; ok {
		return name
	}
	return symbol
}

// Search substring-matches the catalog case-insensitively over symbol
// or name, shaped like the provider's lookup response. Results come
// back in symbol order so repeated calls agree.
func (c Catalog) Search(query string) market.SearchResults {
	q := strings.ToLower(query)
	results := make([]market.SearchResult, 0, len(c.Names))
	for symbol, name := range c.Names {
		if !strings.Contains(strings.ToLower(symbol), q) && !strings.Contains(strings.ToLower(name), q) {
			continue
		}
		results = append(results, market.SearchResult{
			Symbol:        symbol,
			Description:   name,
			DisplaySymbol: symbol,
			Type:          "Common Stock",
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Symbol < results[j].Symbol })
	return market.SearchResults{Count: len(results), Result: results}
}
