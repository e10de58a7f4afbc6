package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mystal/mines/internal/middleware"
)

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

func StatusHandler(log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := &Status{LoggedIn: false}
		if claims, ok := middleware.PlayerClaims(r.Context()); ok {
			status.LoggedIn = true
			status.Player = &PlayerInfo{claims.PlayerId, claims.Username}
		}
		sendJSONOrLog(w, log, status)
	}
}
