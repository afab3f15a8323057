package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Finnhub struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
}

type Config struct {
	Server   Server  `json:"server"`
	Finnhub  Finnhub `json:"finnhub"`
	LogLevel string  `json:"log_level"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 10},
		Finnhub: Finnhub{
			// Finnhub rejects the demo key on every call, which lands
			// the whole API on the synthetic-data path.
			APIKey:  "demo",
			BaseURL: "https://finnhub.io/api/v1",
		},
		LogLevel: "info",
	}
}

// Load reads JSON config from path. If path is empty or the file does
// not exist, it returns defaults. Environment variables override
// select fields for secrecy.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.Finnhub.APIKey = v
	}
	if v := os.Getenv("FINNHUB_BASE_URL"); v != "" {
		cfg.Finnhub.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
