package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mystal/mines/internal/config"
	"github.com/mystal/mines/internal/middleware"
	"github.com/mystal/mines/internal/session"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log    logrus.FieldLogger
	cfg    *config.Config
	router *http.ServeMux
	store  *session.Store
}

func New(log logrus.FieldLogger, cfg *config.Config) *App {
	app := &App{
		log:    log,
		cfg:    cfg,
		router: http.NewServeMux(),
		store:  session.NewStore(log, cfg.Sessions),
	}

	app.loadRoutes()

	return app
}

// Handler is the full middleware chain, mounted under the base path.
func (a *App) Handler() http.Handler {
	var h http.Handler = a.router
	if base := a.cfg.App.BasePath; base != "" {
		h = http.StripPrefix(base, h)
	}
	return middleware.Wrap(h,
		middleware.Logging(a.log),
		middleware.Cors(a.cfg.App.AllowedOrigins),
		middleware.Auth(a.log, a.cfg.Cookies),
	)
}

// Start serves until ctx is done, then shuts the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.cfg.App.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.WithField("addr", server.Addr).Info("server listening")
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.store.Run(gCtx, a.cfg.Sessions.SweepInterval)
	})

	return g.Wait()
}
