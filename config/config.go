package config

import (
	"fmt"
	"strconv"
	"time"

	"totalhub-web/utils"
)

// Settings is the environment-driven configuration. The backend URL is the
// only hard requirement: every piece of real state lives behind it.
type Settings struct {
	BackendAPIURL string
	Port          string
	JWTSecret     string
	CORSOrigins   string
	// QuoteDebounce coalesces quote recomputation bursts; GridDebounce
	// coalesces per-cell day-price edits.
	QuoteDebounce time.Duration
	GridDebounce  time.Duration
	CookieSecure  bool
}

func Load() (*Settings, error) {
	backendURL := utils.EnvOrDefault("BACKEND_API_URL", "")
	if backendURL == "" {
		return nil, fmt.Errorf("BACKEND_API_URL is not set")
	}

	secret := utils.EnvOrDefault("JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	s := &Settings{
		BackendAPIURL: backendURL,
		Port:          utils.EnvOrDefault("PORT", "8080"),
		JWTSecret:     secret,
		CORSOrigins:   utils.EnvOrDefault("CORS_ORIGINS", ""),
		QuoteDebounce: durationMS("QUOTE_DEBOUNCE_MS", 400),
		GridDebounce:  durationMS("GRID_DEBOUNCE_MS", 500),
		CookieSecure:  utils.EnvOrDefault("COOKIE_SECURE", "false") == "true",
	}
	return s, nil
}

func durationMS(key string, def int) time.Duration {
	raw := utils.EnvOrDefault(key, strconv.Itoa(def))
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		ms = def
	}
	return time.Duration(ms) * time.Millisecond
}
