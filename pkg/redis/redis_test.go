package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type standing struct {
	Team string `json:"team"`
	Rank int    `json:"rank"`
}

func TestConfig_Addr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "cache"
	cfg.Port = 6380
	assert.Equal(t, "cache:6380", cfg.Addr())
}

func TestClient_GetJSON(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewFromClient(db)
	ctx := context.Background()

	mock.ExpectGet("nba:standings").SetVal(`{"team":"Celtics","rank":1}`)

	var got standing
	require.NoError(t, c.GetJSON(ctx, "nba:standings", &got))
	assert.Equal(t, standing{Team: "Celtics", Rank: 1}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_GetJSON_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewFromClient(db)

	mock.ExpectGet("nba:missing").RedisNil()

	var got standing
	err := c.GetJSON(context.Background(), "nba:missing", &got)
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

func TestClient_GetJSON_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewFromClient(db)

	mock.ExpectGet("nba:broken").SetErr(errors.New("connection refused"))

	var got standing
	err := c.GetJSON(context.Background(), "nba:broken", &got)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrCacheMiss))
}

func TestClient_SetJSON(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewFromClient(db)

	mock.ExpectSet("nba:standings", []byte(`{"team":"Heat","rank":2}`), 10*time.Minute).SetVal("OK")

	err := c.SetJSON(context.Background(), "nba:standings", standing{Team: "Heat", Rank: 2}, 10*time.Minute)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_HealthCheck(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewFromClient(db)

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, c.HealthCheck(context.Background()))

	mock.ExpectPing().SetErr(errors.New("down"))
	assert.Error(t, c.HealthCheck(context.Background()))
}
