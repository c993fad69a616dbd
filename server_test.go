package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"checkers/game/network"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func createGame(t *testing.T, r http.Handler) string {
	t.Helper()
	rr := do(t, r, http.MethodPost, "/api/games", "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var payload struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.ID)
	return payload.ID
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return newRouter(network.NewHub())
}

func TestHealthz(t *testing.T) {
	rr := do(t, newTestRouter(), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestCreateGameLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newRouter(network.NewHub(network.WithMaxRooms(1)))

	createGame(t, r)
	rr := do(t, r, http.MethodPost, "/api/games", "")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.JSONEq(t, `{"error":"too many open games"}`, rr.Body.String())
}

func TestGetGame(t *testing.T) {
	r := newTestRouter()
	id := createGame(t, r)

	rr := do(t, r, http.MethodGet, "/api/games/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var st network.GameState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	require.Equal(t, id, st.ID)
	require.Equal(t, "A", st.CurrentPlayer)
	require.Equal(t, "in_progress", st.Status)
	require.Equal(t, network.CellB, st.Board[0][0])
	require.Equal(t, network.CellA, st.Board[7][1])
	require.Equal(t, network.PieceCount{Normal: 12}, st.Pieces["A"])

	rr = do(t, r, http.MethodGet, "/api/games/nope", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPlayMove(t *testing.T) {
	r := newTestRouter()
	id := createGame(t, r)
	path := "/api/games/" + id + "/moves"

	tests := []struct {
		name   string
		body   string
		status int
		turn   string
	}{
		{"missing coordinate", `{"from":{"x":1},"to":{"x":0,"y":4}}`, http.StatusBadRequest, ""},
		{"malformed json", `{"from":`, http.StatusBadRequest, ""},
		{"off the board", `{"from":{"x":1,"y":5},"to":{"x":1,"y":9}}`, http.StatusUnprocessableEntity, ""},
		{"backward", `{"from":{"x":1,"y":5},"to":{"x":0,"y":6}}`, http.StatusUnprocessableEntity, ""},
		{"A opens", `{"from":{"x":1,"y":5},"to":{"x":0,"y":4}}`, http.StatusOK, "B"},
		{"A again", `{"from":{"x":3,"y":5},"to":{"x":2,"y":4}}`, http.StatusUnprocessableEntity, ""},
		{"B replies", `{"from":{"x":0,"y":2},"to":{"x":1,"y":3}}`, http.StatusOK, "A"},
		{"no displacement", `{"from":{"x":0,"y":4},"to":{"x":0,"y":4}}`, http.StatusUnprocessableEntity, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, r, http.MethodPost, path, tt.body)
			require.Equal(t, tt.status, rr.Code, rr.Body.String())
			if tt.turn == "" {
				return
			}
			var st network.GameState
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
			require.Equal(t, tt.turn, st.CurrentPlayer)
		})
	}

	rr := do(t, r, http.MethodPost, "/api/games/nope/moves", `{"from":{"x":1,"y":5},"to":{"x":0,"y":4}}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLegalMoves(t *testing.T) {
	r := newTestRouter()
	id := createGame(t, r)

	rr := do(t, r, http.MethodGet, "/api/games/"+id+"/moves?x=7&y=5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"from":{"x":7,"y":5},"to":[{"x":6,"y":4}]}`, rr.Body.String())

	rr = do(t, r, http.MethodGet, "/api/games/"+id+"/moves?x=7", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, r, http.MethodGet, "/api/games/"+id+"/moves?x=9&y=9", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"from":{"x":9,"y":9},"to":[]}`, rr.Body.String())
}
