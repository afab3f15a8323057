package api

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"stockpredict/internal/market"
	"stockpredict/internal/predict"
	"stockpredict/internal/provider"
	"stockpredict/internal/stocks"
	"stockpredict/internal/synth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeProvider fails everything when down, otherwise serves a flat
// quote per symbol.
type fakeProvider struct {
	down bool
}

func (f fakeProvider) Name() string { return "fake" }

func (f fakeProvider) FetchQuote(_ context.Context, symbol string) (market.Quote, error) {
	if f.down {
		return market.Quote{}, &provider.Error{Provider: "fake", Op: "quote", Status: 502}
	}
	return market.Quote{Symbol: symbol, Name: symbol, Price: 100, High: 101, Low: 99, Open: 100, PreviousClose: 100}, nil
}

func (f fakeProvider) Search(_ context.Context, _ string) (market.SearchResults, error) {
	if f.down {
		return market.SearchResults{}, &provider.Error{Provider: "fake", Op: "search", Status: 502}
	}
	return market.SearchResults{Count: 0, Result: []market.SearchResult{}}, nil
}

func newTestRouter(p provider.Provider) *gin.Engine {
	log := zerolog.Nop()
	quotes := stocks.NewService(p, synth.NewSeeded(4), stocks.DefaultCatalog(), log)
	predictions := predict.NewService(predict.NewEngineSeeded(4), quotes)
	return NewRouter(NewHandler(quotes, predictions, log), log)
}

func get(t *testing.T, router *gin.Engine, path string, into any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if into != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
	}
	return rec
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(fakeProvider{})
	rec := get(t, router, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestGetQuote_ProviderUnreachableStillServes200(t *testing.T) {
	t.Parallel()

	router := newTestRouter(fakeProvider{down: true})

	var quote market.Quote
	rec := get(t, router, "/api/stocks/quote/AAPL", &quote)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "AAPL", quote.Symbol)
	require.Equal(t, "Apple Inc.", quote.Name)
	for _, v := range []float64{quote.Price, quote.Change, quote.ChangePercent, quote.High, quote.Low, quote.Open, quote.PreviousClose} {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestGetQuote_LowercasePathParam(t *testing.T) {
	t.Parallel()

	router := newTestRouter(fakeProvider{})

	var quote market.Quote
	rec := get(t, router, "/api/stocks/quote/tsla", &quote)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "TSLA", quote.Symbol)
	require.Equal(t, "Tesla Inc.", quote.Name)
}

func TestGetQuotes_OrderPreserving(t *testing.T) {
	t.Parallel()

	router := newTestRouter(fakeProvider{down: true})

	var quotes []market.Quote
	rec := get(t, router, "/api/stocks/quotes/aapl,%20msft%20,NVDA", &quotes)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, quotes, 3)
	require.Equal(t, "AAPL", quotes[0].Symbol)
	require.Equal(t, "MSFT", quotes[1].Symbol)
	require.Equal(t, "NVDA", quotes[2].Symbol)
}

func TestGetIndices(t *testing.T) {
	t.Parallel()

	router := newTestRouter(fakeProvider{down: true})

	var indices []market.Index
	rec := get(t, router, "/api/stocks/indices", &indices)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, indices, 3)
	require.Equal(t, "^GSPC", indices[0].Symbol)
	require.Equal(t, "^DJI", indices[1].Symbol)
	require.Equal(t, "^IXIC", indices[2].Symbol)
}

func TestGetTrending(t *testing.T) {
	t.Parallel()

	router := newTestRouter(fakeProvider{down: true})

	var quotes []market.Quote
	rec := get(t, router, "/api/stocks/trending", &quotes)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, quotes, 8)
	require.Equal(t, "AAPL", quotes[0].Symbol)
}

func TestSearch_FallbackFindsAppleForAppl(t *testing.T) {
	t.Parallel()

	router := newTestRouter(fakeProvider{down: true})

	var res market.SearchResults
	rec := get(t, router, "/api/stocks/search/appl", &res)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, res.Count, len(res.Result))
	require.Contains(t, res.Result, market.SearchResult{
		Symbol:        "AAPL",
		Description:   "Apple Inc.",
		DisplaySymbol: "AAPL",
		Type:          "Common Stock",
	})
}

func TestGetChart_OneYearIs53WeeklyPoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(fakeProvider{})

	var series market.ChartSeries
	rec := get(t, router, "/api/stocks/chart/AAPL/1Y", &series)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, series.Prices, 53)
	require.Len(t, series.Timestamps, 53)

	week := int64(7 * 24 * 60 * 60 * 1000)
	for i := 1; i < len(series.Timestamps); i++ {
		require.Equal(t, week, series.Timestamps[i]-series.Timestamps[i-1])
	}
}

func TestGetChart_UnknownPeriodTreatedAsOneMonth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(fakeProvider{})

	var series market.ChartSeries
	rec := get(t, router, "/api/stocks/chart/AAPL/6M", &series)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, series.Prices, 31)
}

func TestGetPrediction(t *testing.T) {
	t.Parallel()

	router := newTestRouter(fakeProvider{})

	var p market.Prediction
	rec := get(t, router, "/api/stocks/prediction/aapl", &p)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "AAPL", p.Symbol)
	require.Contains(t, []market.Sentiment{market.Bullish, market.Bearish, market.Neutral}, p.Sentiment)
	require.GreaterOrEqual(t, p.Confidence, 60)
	require.LessOrEqual(t, p.Confidence, 89)
	require.Greater(t, p.TargetPrice, 0.0)
}

func TestGetPredictions_OrderPreserving(t *testing.T) {
	t.Parallel()

	router := newTestRouter(fakeProvider{down: true})

	var out []market.Prediction
	rec := get(t, router, "/api/stocks/predictions/msft,aapl", &out)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, out, 2)
	require.Equal(t, "MSFT", out[0].Symbol)
	require.Equal(t, "AAPL", out[1].Symbol)
}

func TestPanicBecomesGeneric500(t *testing.T) {
	t.Parallel()

	log := zerolog.Nop()
	router := NewRouter(NewHandler(nil, nil, log), log)
	router.GET("/boom", func(c *gin.Context) { panic("kaput") })

	rec := get(t, router, "/boom", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error": "Internal server error"}`, rec.Body.String())
}
