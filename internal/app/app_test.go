package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/tilesweeper/internal/board"
	"github.com/vancomm/tilesweeper/internal/config"
	"github.com/vancomm/tilesweeper/internal/session"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:     "127.0.0.1:0",
		BasePath: "/api",
		Game:     config.Game{Width: 9, Height: 9, HazardCount: 10},
		Sessions: config.Sessions{Max: 10},
		Cors:     config.Cors{AllowedOrigins: []string{"https://play.example"}},
	}
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRoutes(t *testing.T) {
	t.Parallel()

	placer := board.PlacerFunc(func(cfg board.Config, origin board.Point) []board.Point {
		return []board.Point{{Row: 0, Col: 0}}
	})
	cfg := testConfig()
	cfg.Game = config.Game{Width: 4, Height: 3, HazardCount: 1}
	a := New(testLogger, cfg, session.WithBoardOptions(board.WithPlacer(placer)))
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodPost, "/api/game", http.StatusCreated},
		{http.MethodGet, "/api/game", http.StatusOK},
		{http.MethodGet, "/api/game/1", http.StatusOK},
		{http.MethodPost, "/api/game/1/move?move=reveal&row=2&col=3", http.StatusOK},
		{http.MethodPost, "/api/game/1/reset", http.StatusOK},
		{http.MethodGet, "/api/game/1/connect", http.StatusBadRequest},
		{http.MethodDelete, "/api/game/1", http.StatusNoContent},
		{http.MethodGet, "/api/game/1", http.StatusNotFound},
		{http.MethodGet, "/game", http.StatusNotFound},
		{http.MethodPut, "/api/game", http.StatusMethodNotAllowed},
	}

	// order matters, no subtests
	for _, test := range tests {
		req, err := http.NewRequest(test.method, srv.URL+test.path, nil)
		require.NoError(t, err)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, test.status, res.StatusCode, "%s %s", test.method, test.path)
	}
}

func TestCorsHeaders(t *testing.T) {
	t.Parallel()

	a := New(testLogger, testConfig())
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/game", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://play.example")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "https://play.example", res.Header.Get("Access-Control-Allow-Origin"))

	var list map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&list))
	assert.EqualValues(t, 0, list["total"])
}

func TestStartStopsOnCancel(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	cfg := testConfig()
	cfg.Port = addr
	a := New(testLogger, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Start(ctx)
	}()

	require.Eventually(t, func() bool {
		res, err := http.Post("http://"+addr+"/api/game", "", nil)
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusCreated
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
