// Package nba reads basketball data from the api-nba-v1 service on RapidAPI.
package nba

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prohmpiriya/courtside-tickets/pkg/retry"
	"github.com/prohmpiriya/courtside-tickets/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

var (
	// ErrNotConfigured is returned without a network call when no API key is set
	ErrNotConfigured = errors.New("nba api key not configured")
	// ErrBadPayload means the upstream answered without a response array
	ErrBadPayload = errors.New("nba api returned an unexpected payload")
)

// StatusError is a non-2xx upstream answer
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nba api returned status %d: %s", e.Code, e.Body)
}

// Provider is the read-only data set the sports endpoints need.
// Every method returns the upstream "response" array untouched.
type Provider interface {
	Games(ctx context.Context, season, team string) ([]json.RawMessage, error)
	Standings(ctx context.Context, league, season string) ([]json.RawMessage, error)
	Player(ctx context.Context, id string) ([]json.RawMessage, error)
	PlayerStatistics(ctx context.Context, id, season string) ([]json.RawMessage, error)
}

// ClientConfig holds RapidAPI connection settings
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	Host       string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Client calls the upstream API over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	host       string
	httpClient *http.Client
	retry      *retry.Config
}

// NewClient creates a new Client
func NewClient(cfg *ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rc := retry.DefaultConfig()
	rc.MaxRetries = cfg.MaxRetries
	if cfg.RetryDelay > 0 {
		rc.InitialInterval = cfg.RetryDelay
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		host:    cfg.Host,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retry: rc,
	}
}

// Games lists the games of a team in a season
func (c *Client) Games(ctx context.Context, season, team string) ([]json.RawMessage, error) {
	return c.get(ctx, "games", url.Values{"season": {season}, "team": {team}})
}

// Standings lists league standings for a season
func (c *Client) Standings(ctx context.Context, league, season string) ([]json.RawMessage, error) {
	return c.get(ctx, "standings", url.Values{"league": {league}, "season": {season}})
}

// Player looks up a player by id
func (c *Client) Player(ctx context.Context, id string) ([]json.RawMessage, error) {
	return c.get(ctx, "players", url.Values{"id": {id}})
}

// PlayerStatistics lists per-game statistics of a player in a season
func (c *Client) PlayerStatistics(ctx context.Context, id, season string) ([]json.RawMessage, error) {
	return c.get(ctx, "players/statistics", url.Values{"id": {id}, "season": {season}})
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	ctx, span := telemetry.StartSpan(ctx, "nba.client."+strings.ReplaceAll(endpoint, "/", "."),
		attribute.String("nba.endpoint", endpoint),
	)
	var items []json.RawMessage
	err := retry.Do(ctx, c.retry, func(ctx context.Context) error {
		var err error
		items, err = c.fetch(ctx, endpoint, query)
		return err
	})
	telemetry.EndSpan(span, err)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, query url.Values) ([]json.RawMessage, error) {
	u := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, retry.Permanent(err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("Accept", "application/json")
	telemetry.InjectHTTP(ctx, req.Header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		statusErr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		// rate limiting is worth another attempt, other client errors are not
		if resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
			return nil, retry.Permanent(statusErr)
		}
		return nil, statusErr
	}

	var envelope struct {
		Response json.RawMessage `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, retry.Permanent(fmt.Errorf("%w: %v", ErrBadPayload, err))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(envelope.Response, &items); err != nil || items == nil {
		return nil, retry.Permanent(ErrBadPayload)
	}
	return items, nil
}
