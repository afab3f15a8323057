// Package finnhub adapts the Finnhub REST API to the provider contract.
package finnhub

import (
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=finnhub_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a Finnhub API client. The API key travels as the `token`
// query parameter on every request.
type Client struct {
	name       string
	baseURL    string
	httpClient HTTPClient
	header     http.Header
	query      url.Values
}

// Option is a configuration option for the Finnhub client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// New creates a Finnhub client. An empty key is allowed; Finnhub's
// demo key behaves the same way (every call comes back 401 and the
// caller falls through to mock data).
func New(key string, options ...Option) *Client {
	c := &Client{
		name:       "Finnhub",
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	if key != "" {
		c.query.Set("token", key)
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) Name() string { return c.name }
