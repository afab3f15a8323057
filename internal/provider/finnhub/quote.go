package finnhub

import (
	"context"
	"encoding/json"
	"maps"
	"net/http"
	"net/url"

	"stockpredict/internal/market"
	"stockpredict/internal/provider"
)

// quoteResponse carries Finnhub's abbreviated field names.
type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// FetchQuote retrieves the current quote for one ticker. Provider
// values are passed through unvalidated; missing fields decode to 0.
// Name resolution is the caller's job, the adapter echoes the symbol.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (market.Quote, error) {
	query := maps.Clone(c.query)
	query.Set("symbol", symbol)

	var body quoteResponse
	if err := c.getJSON(ctx, "quote", "/quote", query, &body); err != nil {
		return market.Quote{}, err
	}
	return market.Quote{
		Symbol:        symbol,
		Name:          symbol,
		Price:         body.Current,
		Change:        body.Change,
		ChangePercent: body.ChangePercent,
		High:          body.High,
		Low:           body.Low,
		Open:          body.Open,
		PreviousClose: body.PreviousClose,
	}, nil
}

// Search runs Finnhub's symbol lookup for a free-text query.
func (c *Client) Search(ctx context.Context, q string) (market.SearchResults, error) {
	query := maps.Clone(c.query)
	query.Set("q", q)

	var body market.SearchResults
	if err := c.getJSON(ctx, "search", "/search", query, &body); err != nil {
		return market.SearchResults{}, err
	}
	return body, nil
}

// getJSON performs a GET and decodes the JSON body. Every failure mode
// comes back as *provider.Error; there are no retries and no caching.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, into any) error {
	u := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return &provider.Error{Provider: c.name, Op: op, Err: err}
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &provider.Error{Provider: c.name, Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &provider.Error{Provider: c.name, Op: op, Status: res.StatusCode}
	}
	if err := json.NewDecoder(res.Body).Decode(into); err != nil {
		return &provider.Error{Provider: c.name, Op: op, Err: err}
	}
	return nil
}
