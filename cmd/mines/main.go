package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/mystal/mines/internal/app"
	"github.com/mystal/mines/internal/config"
)

var (
	log = logrus.New()

	envPath string
)

func init() {
	const (
		defaultEnvPath = ".env"
		usage          = "env file path"
	)
	flag.StringVar(&envPath, "env", defaultEnvPath, usage)
	flag.StringVar(&envPath, "e", defaultEnvPath, usage+" (shorthand)")
}

func setupLogging(cfg *config.App) {
	logLevel := logrus.InfoLevel
	if cfg.Development {
		logLevel = logrus.DebugLevel
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	log.SetLevel(logLevel)

	if cfg.LogFile == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.LogFile,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to open log file: ", err)
	}
	log.AddHook(hook)
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	if err := config.LoadEnv(envPath); err != nil {
		log.Fatalf("unable to load env file %s: %s", envPath, err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}

	setupLogging(cfg.App)

	log.WithFields(logrus.Fields{
		"development": cfg.App.Development,
		"base_path":   cfg.App.BasePath,
		"session_ttl": cfg.Sessions.TTL.String(),
		"max_width":   cfg.Sessions.MaxWidth,
		"max_height":  cfg.Sessions.MaxHeight,
	}).Debug("config")

	if cfg.EphemeralJWT {
		log.Warn("no JWT keys configured, generated a key pair for this run")
	}

	if err := app.New(log, cfg).Start(mainCtx); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
