package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialGame(t *testing.T, srv *httptest.Server, path, player string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	header := http.Header{}
	header.Set("X-Player", player)
	return websocket.DefaultDialer.Dial(url, header)
}

func TestConnectWS(t *testing.T) {
	h, _ := setupTestServer(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	require.Equal(t, http.StatusCreated,
		do(t, h, http.MethodPost, "/game?width=3&height=1&mine_count=1", "1").Code)

	conn, _, err := dialGame(t, srv, "/game/1/connect", "1")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("g")))
	var dto GameSessionDTO
	require.NoError(t, conn.ReadJSON(&dto))
	assert.Equal(t, "1", dto.GameSessionId)
	assert.Equal(t, "play", dto.State)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("f 0 0\nf 1 0\nf 2 0")))
	require.NoError(t, conn.ReadJSON(&dto))
	assert.Equal(t, []string{viewFlagged, viewFlagged, viewFlagged}, dto.Grid)
	assert.Equal(t, -2, dto.MinesLeft)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 9")))
	var errResp map[string]string
	require.NoError(t, conn.ReadJSON(&errResp))
	assert.Contains(t, errResp["error"], "takes 2 arguments")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("r")))
	dto = GameSessionDTO{}
	require.NoError(t, conn.ReadJSON(&dto))
	assert.True(t, dto.Forfeited)
	require.NotNil(t, dto.EndedAt)
	assert.Contains(t, dto.Grid, viewFlaggedMine)
	assert.Contains(t, dto.Grid, viewFalseFlag)
}

func TestConnectWSRejects(t *testing.T) {
	h, _ := setupTestServer(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	require.Equal(t, http.StatusCreated,
		do(t, h, http.MethodPost, "/game?width=3&height=3&mine_count=1", "1").Code)

	tests := []struct {
		name   string
		path   string
		player string
		status int
	}{
		{"other player", "/game/1/connect", "2", http.StatusForbidden},
		{"unknown game", "/game/5/connect", "1", http.StatusNotFound},
		{"no player", "/game/1/connect", "", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, resp, err := dialGame(t, srv, tc.path, tc.player)
			require.ErrorIs(t, err, websocket.ErrBadHandshake)
			require.NotNil(t, resp)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
