package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mystal/mines/internal/config"
	"github.com/mystal/mines/internal/middleware"
	"github.com/mystal/mines/internal/session"
)

// withPlayer stands in for the auth middleware: the player id comes from
// the X-Player header.
func withPlayer(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := r.Header.Get("X-Player"); v != "" {
			id, _ := strconv.ParseInt(v, 10, 64)
			claims := config.NewPlayerClaims(id, "player-"+v)
			ctx := context.WithValue(r.Context(), middleware.CtxPlayerClaims, claims)
			r = r.WithContext(ctx)
		}
		h.ServeHTTP(w, r)
	})
}

func setupTestServer(t *testing.T) (http.Handler, *session.Store) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := session.NewStore(logger, &config.Sessions{
		TTL:           time.Hour,
		SweepInterval: time.Minute,
		MaxWidth:      50,
		MaxHeight:     30,
	})
	ws, err := config.NewWebSocket(nil)
	require.NoError(t, err)
	game := NewGameHandler(logger, store, ws)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /game", game.NewGame)
	mux.HandleFunc("GET /game/{id}", game.Fetch)
	mux.HandleFunc("POST /game/{id}/move", game.MakeAMove)
	mux.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	mux.HandleFunc("GET /game/{id}/connect", game.ConnectWS)
	mux.Handle("GET /status", StatusHandler(logger))
	return withPlayer(mux), store
}

func do(t *testing.T, h http.Handler, method, target, player string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, target, nil)
	if player != "" {
		r.Header.Set("X-Player", player)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func decodeGame(t *testing.T, rec *httptest.ResponseRecorder) GameSessionDTO {
	t.Helper()
	var dto GameSessionDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	return dto
}

func TestNewGame(t *testing.T) {
	h, _ := setupTestServer(t)

	rec := do(t, h, http.MethodPost, "/game?width=5&height=4&mine_count=3", "1")
	require.Equal(t, http.StatusCreated, rec.Code)
	dto := decodeGame(t, rec)
	assert.Equal(t, "1", dto.GameSessionId)
	assert.Equal(t, 5, dto.Width)
	assert.Equal(t, 4, dto.Height)
	assert.Equal(t, 3, dto.MineCount)
	assert.Equal(t, 3, dto.MinesLeft)
	assert.Equal(t, "play", dto.State)
	assert.Nil(t, dto.EndedAt)
	require.Len(t, dto.Grid, 20)
	for _, v := range dto.Grid {
		assert.Equal(t, viewHidden, v)
	}
}

func TestNewGamePreset(t *testing.T) {
	h, _ := setupTestServer(t)

	rec := do(t, h, http.MethodPost, "/game?difficulty=Medium", "1")
	require.Equal(t, http.StatusCreated, rec.Code)
	dto := decodeGame(t, rec)
	assert.Equal(t, 16, dto.Width)
	assert.Equal(t, 16, dto.Height)
	assert.Equal(t, 40, dto.MineCount)
}

func TestNewGameRejects(t *testing.T) {
	tests := []struct {
		name   string
		target string
		player string
		status int
	}{
		{"no player", "/game?width=5&height=5&mine_count=1", "", http.StatusUnauthorized},
		{"missing mine count", "/game?width=5&height=5", "1", http.StatusBadRequest},
		{"not a number", "/game?width=five&height=5&mine_count=1", "1", http.StatusBadRequest},
		{"unknown preset", "/game?difficulty=nightmare", "1", http.StatusBadRequest},
		{"too many mines", "/game?width=3&height=3&mine_count=10", "1", http.StatusBadRequest},
		{"too wide", "/game?width=51&height=3&mine_count=1", "1", http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, store := setupTestServer(t)
			rec := do(t, h, http.MethodPost, tc.target, tc.player)
			assert.Equal(t, tc.status, rec.Code)
			assert.Zero(t, store.Len())
		})
	}
}

func TestFetch(t *testing.T) {
	h, _ := setupTestServer(t)
	require.Equal(t, http.StatusCreated,
		do(t, h, http.MethodPost, "/game?width=3&height=3&mine_count=1", "1").Code)

	rec := do(t, h, http.MethodGet, "/game/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", decodeGame(t, rec).GameSessionId)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/game/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/game/abc", "").Code)
}

func TestMakeAMoveWins(t *testing.T) {
	h, _ := setupTestServer(t)
	require.Equal(t, http.StatusCreated,
		do(t, h, http.MethodPost, "/game?width=4&height=3&mine_count=0", "1").Code)

	rec := do(t, h, http.MethodPost, "/game/1/move?move=open&x=1&y=1", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	dto := decodeGame(t, rec)
	assert.Equal(t, "win", dto.State)
	require.NotNil(t, dto.EndedAt)
	for _, v := range dto.Grid {
		assert.Equal(t, "0", v)
	}
}

func TestMakeAMoveLoses(t *testing.T) {
	h, _ := setupTestServer(t)
	require.Equal(t, http.StatusCreated,
		do(t, h, http.MethodPost, "/game?width=2&height=2&mine_count=4", "1").Code)

	rec := do(t, h, http.MethodPost, "/game/1/move?move=flag&x=1&y=1", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	dto := decodeGame(t, rec)
	assert.Equal(t, []string{viewHidden, viewHidden, viewHidden, viewFlagged}, dto.Grid)
	assert.Equal(t, 3, dto.MinesLeft)

	rec = do(t, h, http.MethodPost, "/game/1/move?move=open&x=0&y=0", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	dto = decodeGame(t, rec)
	assert.Equal(t, "lose", dto.State)
	assert.Equal(t, []string{viewExploded, viewMine, viewMine, viewFlaggedMine}, dto.Grid)
}

func TestMakeAMoveRejects(t *testing.T) {
	h, _ := setupTestServer(t)
	require.Equal(t, http.StatusCreated,
		do(t, h, http.MethodPost, "/game?width=3&height=3&mine_count=1", "1").Code)

	tests := []struct {
		name   string
		target string
		player string
		status int
	}{
		{"no player", "/game/1/move?move=open&x=0&y=0", "", http.StatusUnauthorized},
		{"bad move", "/game/1/move?move=dig&x=0&y=0", "1", http.StatusBadRequest},
		{"missing y", "/game/1/move?move=open&x=0", "1", http.StatusBadRequest},
		{"other player", "/game/1/move?move=open&x=0&y=0", "2", http.StatusForbidden},
		{"unknown game", "/game/7/move?move=open&x=0&y=0", "1", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tc.target, tc.player)
			assert.Equal(t, tc.status, rec.Code)
		})
	}

	rec := do(t, h, http.MethodGet, "/game/1", "")
	assert.Equal(t, "play", decodeGame(t, rec).State)
}

func TestMakeAMoveOutOfBoundsIsIgnored(t *testing.T) {
	h, _ := setupTestServer(t)
	require.Equal(t, http.StatusCreated,
		do(t, h, http.MethodPost, "/game?width=3&height=3&mine_count=1", "1").Code)

	rec := do(t, h, http.MethodPost, "/game/1/move?move=open&x=-1&y=9", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "play", decodeGame(t, rec).State)
}

func TestForfeit(t *testing.T) {
	h, _ := setupTestServer(t)
	require.Equal(t, http.StatusCreated,
		do(t, h, http.MethodPost, "/game?width=2&height=1&mine_count=1", "1").Code)

	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodPost, "/game/1/forfeit", "2").Code)

	rec := do(t, h, http.MethodPost, "/game/1/forfeit", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	dto := decodeGame(t, rec)
	assert.True(t, dto.Forfeited)
	assert.Equal(t, "play", dto.State)
	require.NotNil(t, dto.EndedAt)
	assert.Contains(t, dto.Grid, viewMine)

	rec = do(t, h, http.MethodPost, "/game/1/move?move=open&x=0&y=0", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, decodeGame(t, rec).Grid, viewExploded)
}

func TestStatus(t *testing.T) {
	h, _ := setupTestServer(t)

	var status Status
	rec := do(t, h, http.MethodGet, "/status", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.LoggedIn)
	assert.Nil(t, status.Player)

	rec = do(t, h, http.MethodGet, "/status", "12")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.LoggedIn)
	require.NotNil(t, status.Player)
	assert.Equal(t, int64(12), status.Player.PlayerId)
	assert.Equal(t, "player-12", status.Player.Username)
}
