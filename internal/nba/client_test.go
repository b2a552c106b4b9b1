package nba

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(&ClientConfig{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		Host:       "api-nba-v1.p.rapidapi.com",
		Timeout:    time.Second,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})
	return c, &calls
}

func TestClient_Games(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games", r.URL.Path)
		assert.Equal(t, "2024", r.URL.Query().Get("season"))
		assert.Equal(t, "2", r.URL.Query().Get("team"))
		assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "api-nba-v1.p.rapidapi.com", r.Header.Get("X-RapidAPI-Host"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":2,"response":[{"id":1},{"id":2}]}`))
	})

	games, err := c.Games(context.Background(), "2024", "2")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.JSONEq(t, `{"id":1}`, string(games[0]))
}

func TestClient_PlayerStatisticsPath(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/statistics", r.URL.Path)
		assert.Equal(t, "265", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`{"response":[]}`))
	})

	stats, err := c.PlayerStatistics(context.Background(), "265", "2024")
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient(&ClientConfig{BaseURL: "http://127.0.0.1:1"})

	_, err := c.Standings(context.Background(), "standard", "2024")
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestClient_ClientErrorIsNotRetried(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"You are not subscribed to this API."}`))
	})

	_, err := c.Standings(context.Background(), "standard", "2024")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestClient_ServerErrorIsRetried(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Games(context.Background(), "2024", "2")
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
}

func TestClient_RecoversAfterTransientFailure(t *testing.T) {
	var n int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&n, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"response":[{"id":7}]}`))
	})

	games, err := c.Games(context.Background(), "2024", "2")
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestClient_BadPayload(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":{"season":"required"},"response":{}}`))
	})

	_, err := c.Games(context.Background(), "", "2")
	assert.True(t, errors.Is(err, ErrBadPayload))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}
