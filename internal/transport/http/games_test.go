package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/iamasit07/connect4-engine/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *game.SessionManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sm := game.NewSessionManager(game.Settings{Height: 6, Width: 7, Player1Color: "red", Player2Color: "gold"})
	signer := auth.NewSigner("http-test", time.Hour)
	router := NewRouter(NewGameHandler(sm, signer, 3600, false), signer, []string{"http://localhost:5173"}, nil)
	return router, sm
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type createdGame struct {
	Token string `json:"token"`
	domain.GameState
}

func createGame(t *testing.T, router *gin.Engine, body interface{}) createdGame {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/games", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created createdGame
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

type moveBody struct {
	Outcome domain.Outcome   `json:"outcome"`
	Row     int              `json:"row"`
	Player  domain.PlayerID  `json:"player"`
	Events  []domain.Event   `json:"events"`
	State   domain.GameState `json:"state"`
}

func TestCreateGame(t *testing.T) {
	router, sm := newTestRouter(t)

	created := createGame(t, router, nil)
	assert.NotEmpty(t, created.Token)
	assert.NotEmpty(t, created.GameID)
	assert.Equal(t, 6, created.Height)
	assert.Equal(t, 7, created.Width)
	assert.Equal(t, domain.StatusInProgress, created.Status)
	assert.Equal(t, domain.Player1, created.CurrentPlayer)
	assert.Equal(t, 1, sm.Count())

	custom := createGame(t, router, map[string]interface{}{"height": 4, "width": 5, "player1Color": "blue"})
	assert.Equal(t, 4, custom.Height)
	assert.Equal(t, 5, custom.Width)
	assert.Equal(t, "blue", custom.Players[0].Color)
}

func TestCreateGameBadDimensions(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/games", "", map[string]int{"height": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGameRejectsOversizedBoard(t *testing.T) {
	router, sm := newTestRouter(t)

	tests := []map[string]int{
		{"height": 1 << 40, "width": 7},
		{"height": 6, "width": domain.MaxWidth + 1},
		{"height": domain.MaxHeight + 1},
	}
	for _, body := range tests {
		w := doJSON(t, router, http.MethodPost, "/api/games", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Equal(t, 0, sm.Count())

	largest := createGame(t, router, map[string]int{"height": domain.MaxHeight, "width": domain.MaxWidth})
	assert.Equal(t, domain.MaxHeight, largest.Height)
	assert.Equal(t, domain.MaxWidth, largest.Width)
}

func TestCreateGameChunkedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	// io.MultiReader hides the length, so the request is sent chunked.
	body := io.MultiReader(strings.NewReader(`{"height":4,"width":5,"player2Color":"green"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/games", body)
	req.Header.Set("Content-Type", "application/json")
	require.Equal(t, int64(-1), req.ContentLength)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created createdGame
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 4, created.Height)
	assert.Equal(t, 5, created.Width)
	assert.Equal(t, "green", created.Players[1].Color)

	req = httptest.NewRequest(http.MethodPost, "/api/games", io.MultiReader(strings.NewReader("")))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/games", io.MultiReader(strings.NewReader("{not json")))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlayMoveEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	created := createGame(t, router, nil)
	path := "/api/games/" + created.GameID + "/moves"

	w := doJSON(t, router, http.MethodPost, path, created.Token, map[string]int{"column": 0})
	require.Equal(t, http.StatusOK, w.Code)

	var body moveBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.OutcomeContinue, body.Outcome)
	assert.Equal(t, 5, body.Row)
	assert.Equal(t, domain.Player1, body.Player)
	require.Len(t, body.Events, 1)
	assert.Equal(t, domain.EventPiecePlaced, body.Events[0].Type)
	assert.Equal(t, domain.Player2, body.State.CurrentPlayer)

	w = doJSON(t, router, http.MethodPost, path, created.Token, map[string]int{"column": 7})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, path, created.Token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, path, "", map[string]int{"column": 0})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlayMoveUntilWin(t *testing.T) {
	router, _ := newTestRouter(t)
	created := createGame(t, router, nil)
	path := "/api/games/" + created.GameID + "/moves"

	var body moveBody
	for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
		w := doJSON(t, router, http.MethodPost, path, created.Token, map[string]int{"column": col})
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	assert.Equal(t, domain.OutcomeWon, body.Outcome)
	assert.Equal(t, domain.StatusWon, body.State.Status)
	assert.Equal(t, domain.Player1, body.State.Winner)

	w := doJSON(t, router, http.MethodPost, path, created.Token, map[string]int{"column": 1})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.OutcomeIgnored, body.Outcome)
	assert.Empty(t, body.Events)
}

func TestGetGame(t *testing.T) {
	router, sm := newTestRouter(t)
	created := createGame(t, router, nil)

	w := doJSON(t, router, http.MethodGet, "/api/games/"+created.GameID, created.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var state domain.GameState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, created.GameID, state.GameID)
	assert.Len(t, state.Board, 6)

	require.NoError(t, sm.RemoveSession(created.GameID))
	w = doJSON(t, router, http.MethodGet, "/api/games/"+created.GameID, created.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
