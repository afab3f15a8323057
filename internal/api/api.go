// Package api exposes the stock services over HTTP.
package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"stockpredict/internal/predict"
	"stockpredict/internal/stocks"
)

// Handler binds the route surface to the services.
type Handler struct {
	stocks      *stocks.Service
	predictions *predict.Service
	log         zerolog.Logger
}

// NewHandler builds the HTTP handler set.
func NewHandler(s *stocks.Service, p *predict.Service, log zerolog.Logger) *Handler {
	return &Handler{stocks: s, predictions: p, log: log}
}

// NewRouter assembles the gin engine: recovery to a generic JSON 500,
// permissive CORS for the mobile client, health check and the API
// routes. No route lets a panic escape the process.
func NewRouter(h *Handler, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Error().Interface("panic", err).Str("path", c.Request.URL.Path).Msg("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	h.Register(r)
	return r
}

// Register attaches the stock API routes.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/api/stocks")
	g.GET("/indices", h.GetIndices)
	g.GET("/trending", h.GetTrending)
	g.GET("/quote/:symbol", h.GetQuote)
	g.GET("/quotes/:symbols", h.GetQuotes)
	g.GET("/search/:query", h.Search)
	g.GET("/chart/:symbol/:period", h.GetChart)
	g.GET("/prediction/:symbol", h.GetPrediction)
	g.GET("/predictions/:symbols", h.GetPredictions)
}

// GetIndices returns the configured market indices, each falling back
// to synthetic values independently.
func (h *Handler) GetIndices(c *gin.Context) {
	c.JSON(http.StatusOK, h.stocks.GetIndices(c.Request.Context()))
}

// GetTrending returns quotes for the trending tickers.
func (h *Handler) GetTrending(c *gin.Context) {
	c.JSON(http.StatusOK, h.stocks.GetTrending(c.Request.Context()))
}

// GetQuote returns one quote.
func (h *Handler) GetQuote(c *gin.Context) {
	quote := h.stocks.GetQuote(c.Request.Context(), c.Param("symbol"))
	c.JSON(http.StatusOK, quote)
}

// GetQuotes returns quotes for a comma-separated symbol list, one per
// input symbol in input order.
func (h *Handler) GetQuotes(c *gin.Context) {
	symbols := splitSymbols(c.Param("symbols"))
	c.JSON(http.StatusOK, h.stocks.GetQuotes(c.Request.Context(), symbols))
}

// Search proxies the provider's symbol lookup with a catalog fallback.
func (h *Handler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, h.stocks.Search(c.Request.Context(), c.Param("query")))
}

// GetChart returns synthetic price history. Unrecognized periods are
// treated as 1M.
func (h *Handler) GetChart(c *gin.Context) {
	c.JSON(http.StatusOK, h.stocks.Chart(c.Param("symbol"), c.Param("period")))
}

// GetPrediction returns a fresh prediction for one symbol.
func (h *Handler) GetPrediction(c *gin.Context) {
	c.JSON(http.StatusOK, h.predictions.ForSymbol(c.Request.Context(), c.Param("symbol")))
}

// GetPredictions returns predictions for a comma-separated symbol
// list, in input order.
func (h *Handler) GetPredictions(c *gin.Context) {
	symbols := splitSymbols(c.Param("symbols"))
	c.JSON(http.StatusOK, h.predictions.ForSymbols(c.Request.Context(), symbols))
}

func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, stocks.NormalizeSymbol(p))
		}
	}
	return out
}
