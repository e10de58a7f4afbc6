package config

import (
	"errors"
	"fmt"
)

type Config struct {
	App       *App
	JWT       *JWT
	Cookies   *Cookies
	WebSocket *WebSocket
	Sessions  *Sessions

	// EphemeralJWT is set when development mode generated the JWT keys.
	EphemeralJWT bool
}

// Load reads the whole configuration from the environment. Call [LoadEnv]
// first to pick up a .env file.
func Load() (*Config, error) {
	app, err := NewApp()
	if err != nil {
		return nil, err
	}

	cfg := &Config{App: app}

	cfg.JWT, err = NewJWT()
	if errors.Is(err, ErrNoJWTKeys) && app.Development {
		cfg.JWT, err = GenerateJWT(defaultTokenLifetime)
		cfg.EphemeralJWT = true
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load jwt config: %w", err)
	}

	cfg.Cookies, err = NewCookies(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("unable to load cookies config: %w", err)
	}

	cfg.WebSocket, err = NewWebSocket(app.AllowedOrigins)
	if err != nil {
		return nil, fmt.Errorf("unable to load websocket config: %w", err)
	}

	cfg.Sessions, err = NewSessions()
	if err != nil {
		return nil, fmt.Errorf("unable to load sessions config: %w", err)
	}

	return cfg, nil
}
