package config

import (
	"os"
	"strings"
)

type App struct {
	Addr        string
	BasePath    string
	Development bool
	LogFile     string
	// empty means any origin
	AllowedOrigins []string
}

func NewApp() (*App, error) {
	app := &App{
		Addr:        lookupString("APP_ADDR", ":8080"),
		BasePath:    strings.TrimSuffix(os.Getenv("APP_BASE_PATH"), "/"),
		Development: Development(),
		LogFile:     os.Getenv("LOG_FILE"),
	}
	if origins, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok && origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			app.AllowedOrigins = append(app.AllowedOrigins, strings.TrimSpace(origin))
		}
	}
	return app, nil
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}
