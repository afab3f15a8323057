package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stockpredict/internal/api"
	"stockpredict/internal/config"
	"stockpredict/internal/httpx"
	"stockpredict/internal/logging"
	"stockpredict/internal/predict"
	"stockpredict/internal/provider/finnhub"
	"stockpredict/internal/stocks"
	"stockpredict/internal/synth"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fallback := logging.New("info")
		fallback.Fatal().Err(err).Msg("config")
	}
	log := logging.New(cfg.LogLevel)

	if cfg.Finnhub.APIKey == "demo" {
		log.Warn().Msg("FINNHUB_API_KEY not set; provider calls will fail and every response will be synthetic")
	}

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	fh := finnhub.New(cfg.Finnhub.APIKey,
		finnhub.WithBaseURL(cfg.Finnhub.BaseURL),
		finnhub.WithHTTPClient(httpClient.HTTP),
		finnhub.WithHeader(http.Header{"User-Agent": []string{httpClient.UserAgent}}),
	)

	quotes := stocks.NewService(fh, synth.NewFromClock(), stocks.DefaultCatalog(), log)
	predictions := predict.NewService(predict.NewEngineFromClock(), quotes)
	router := api.NewRouter(api.NewHandler(quotes, predictions, log), log)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
