package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

func (g GameHandler) wsRunGameLoop(conn *websocket.Conn, sessionId, owner int64) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		moves, err := parseCommands(string(buf))
		if err != nil {
			if err := conn.WriteJSON(wrapError(err)); err != nil {
				return fmt.Errorf("unable to write json: %w", err)
			}
			continue
		}

		snap, err := g.store.Play(sessionId, owner, moves...)
		if err != nil {
			_ = conn.WriteJSON(wrapError(err))
			return err
		}

		if err := conn.WriteJSON(NewGameSessionDTO(snap)); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	claims, ok := g.player(w, r)
	if !ok {
		return
	}

	sessionId, err := parseSessionID(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := g.store.Authorize(sessionId, claims.PlayerId); err != nil {
		sendError(w, g.log, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()

	log := g.log.WithFields(logrus.Fields{
		"session": sessionId,
		"player":  claims.PlayerId,
	})
	log.Debug("established ws connection")

	err = g.wsRunGameLoop(conn, sessionId, claims.PlayerId)
	if err != nil && !websocket.IsCloseError(
		err, websocket.CloseNormalClosure, websocket.CloseGoingAway,
	) {
		log.WithError(err).Warn("error in ws loop")
		return
	}
	log.Debug("closed ws connection")
}
