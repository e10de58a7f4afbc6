package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mystal/mines/internal/config"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
)

// Auth puts the caller's player claims in the request context. Callers
// without valid cookies get a fresh guest identity.
func Auth(log logrus.FieldLogger, cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParsePlayerClaims(r)
			if err != nil {
				claims = config.NewGuestClaims()
				if err := cookies.Issue(w, claims); err != nil {
					log.WithError(err).Error("unable to issue guest token")
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				log.WithField("player", claims.PlayerId).Debug("issued guest token")
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func PlayerClaims(ctx context.Context) (*config.PlayerClaims, bool) {
	claims, ok := ctx.Value(CtxPlayerClaims).(*config.PlayerClaims)
	return claims, ok
}
