// Package market holds the normalized domain types shared by the
// provider adapters, the mock generator and the HTTP layer.
package market

// Quote is one market snapshot for a symbol. It is a value object:
// nothing is tracked across requests.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
}

// Index is a market index snapshot. Same shape as Quote minus the
// daily range fields; the index symbol is caret-prefixed (^GSPC) and
// resolved to a tradeable proxy ticker before the provider call.
type Index struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// ChartSeries is a synthetic price history: parallel arrays of equal
// length, timestamps in epoch milliseconds ascending and ending at now.
type ChartSeries struct {
	Prices     []float64 `json:"prices"`
	Timestamps []int64   `json:"timestamps"`
}

// Sentiment is one of the three prediction categories.
type Sentiment string

const (
	Bullish Sentiment = "bullish"
	Bearish Sentiment = "bearish"
	Neutral Sentiment = "neutral"
)

// Prediction is derived per request and never stored; repeated calls
// for the same symbol may disagree.
type Prediction struct {
	Symbol         string    `json:"symbol"`
	Sentiment      Sentiment `json:"sentiment"`
	Confidence     int       `json:"confidence"`
	TargetPrice    float64   `json:"targetPrice"`
	Recommendation string    `json:"recommendation"`
	Reasoning      string    `json:"reasoning"`
}

// SearchResult mirrors the provider's symbol-lookup entry shape.
type SearchResult struct {
	Symbol        string `json:"symbol"`
	Description   string `json:"description"`
	DisplaySymbol string `json:"displaySymbol"`
	Type          string `json:"type"`
}

// SearchResults is the provider's symbol-lookup response envelope.
type SearchResults struct {
	Count  int            `json:"count"`
	Result []SearchResult `json:"result"`
}

// WatchlistItem is the only entity persisted client-side. AddedAt is
// epoch milliseconds.
type WatchlistItem struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	AddedAt int64  `json:"addedAt"`
}

// User is the public view of a locally stored account.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}
