package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mystal/mines/internal/config"
	"github.com/mystal/mines/internal/middleware"
	"github.com/mystal/mines/internal/session"
)

var errNoPlayer = errors.New("no player identity")

type GameHandler struct {
	log   logrus.FieldLogger
	store *session.Store
	ws    *config.WebSocket
}

func NewGameHandler(
	log logrus.FieldLogger,
	store *session.Store,
	ws *config.WebSocket,
) *GameHandler {
	handler := &GameHandler{
		log:   log.WithField("component", "game"),
		store: store,
		ws:    ws,
	}

	return handler
}

func (g GameHandler) player(w http.ResponseWriter, r *http.Request) (*config.PlayerClaims, bool) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		sendJSONOrLog(w, g.log, wrapError(errNoPlayer))
		return nil, false
	}
	return claims, true
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	claims, ok := g.player(w, r)
	if !ok {
		return
	}

	params, err := ParseGameParams(r.URL.Query())
	if err != nil {
		badRequest(w, g.log, err)
		return
	}

	snap, err := g.store.Create(claims.PlayerId, params)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, g.log, NewGameSessionDTO(snap))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sessionId, err := parseSessionID(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	snap, err := g.store.Get(sessionId)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(snap))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	claims, ok := g.player(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		badRequest(w, g.log, err)
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		badRequest(w, g.log, err)
		return
	}

	sessionId, err := parseSessionID(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	snap, err := g.store.Play(sessionId, claims.PlayerId, session.Move{
		Kind: move, X: pos.X, Y: pos.Y,
	})
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(snap))
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	claims, ok := g.player(w, r)
	if !ok {
		return
	}

	sessionId, err := parseSessionID(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	snap, err := g.store.Forfeit(sessionId, claims.PlayerId)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(snap))
}
