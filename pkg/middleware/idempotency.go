package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/courtside-tickets/pkg/response"
	"github.com/redis/go-redis/v9"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency key
	IdempotencyKeyHeader = "X-Idempotency-Key"
	// IdempotencyKeyPrefix namespaces the Redis keys
	IdempotencyKeyPrefix = "idempotency:"

	maxIdempotencyKeyLen = 128
)

// IdempotencyStatus represents the status of an idempotency record
type IdempotencyStatus string

const (
	StatusProcessing IdempotencyStatus = "processing"
	StatusCompleted  IdempotencyStatus = "completed"
)

// IdempotencyRecord stores the state of an idempotent request
type IdempotencyRecord struct {
	Status       IdempotencyStatus `json:"status"`
	RequestHash  string            `json:"request_hash"`
	ResponseCode int               `json:"response_code,omitempty"`
	ResponseBody string            `json:"response_body,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// RedisClient is the subset of go-redis used for idempotency records
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// IdempotencyConfig holds configuration for idempotency middleware
type IdempotencyConfig struct {
	Redis RedisClient
	// TTL of a completed record, i.e. how long a response can be replayed
	TTL time.Duration
	// ProcessingTTL bounds how long a crashed request blocks its key
	ProcessingTTL time.Duration
}

// DefaultIdempotencyConfig returns default configuration
func DefaultIdempotencyConfig(client RedisClient) *IdempotencyConfig {
	return &IdempotencyConfig{
		Redis:         client,
		TTL:           24 * time.Hour,
		ProcessingTTL: 60 * time.Second,
	}
}

// Idempotency replays the stored response when a client retries a request
// with the same X-Idempotency-Key. Requests without the header pass through.
// Redis failures fail open.
func Idempotency(config *IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.Error("INVALID_IDEMPOTENCY_KEY", "X-Idempotency-Key is too long"))
			return
		}

		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, response.BadRequest("Unable to read request body"))
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		ctx := c.Request.Context()
		userID, _ := GetUserID(c)
		// Scope by user so two users cannot collide on the same key.
		redisKey := IdempotencyKeyPrefix + userID + ":" + key
		hash := requestHash(c.Request.Method, c.Request.URL.Path, userID, body)

		record := &IdempotencyRecord{
			Status:      StatusProcessing,
			RequestHash: hash,
			CreatedAt:   time.Now(),
		}
		acquired, err := setRecordNX(ctx, config.Redis, redisKey, record, config.ProcessingTTL)
		if err != nil {
			c.Next()
			return
		}

		if !acquired {
			existing, err := getRecord(ctx, config.Redis, redisKey)
			if err != nil {
				c.Next()
				return
			}
			replay(c, existing, hash)
			return
		}

		rw := &capturingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rw

		c.Next()

		status := rw.Status()
		if status >= http.StatusInternalServerError {
			// let the client retry a failed attempt
			config.Redis.Del(ctx, redisKey)
			return
		}

		record.Status = StatusCompleted
		record.ResponseCode = status
		record.ResponseBody = rw.body.String()
		_ = setRecord(ctx, config.Redis, redisKey, record, config.TTL)
	}
}

func replay(c *gin.Context, existing *IdempotencyRecord, hash string) {
	switch {
	case existing.RequestHash != hash:
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, response.Error("IDEMPOTENCY_KEY_REUSED", "Idempotency key already used with a different request"))
	case existing.Status == StatusProcessing:
		c.AbortWithStatusJSON(http.StatusConflict, response.Error("REQUEST_IN_PROGRESS", "A request with this idempotency key is already being processed"))
	default:
		c.Header("Idempotent-Replayed", "true")
		c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
		c.Abort()
	}
}

type capturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func requestHash(method, path, userID string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write([]byte(userID))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func getRecord(ctx context.Context, client RedisClient, key string) (*IdempotencyRecord, error) {
	raw, err := client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var record IdempotencyRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func setRecordNX(ctx context.Context, client RedisClient, key string, record *IdempotencyRecord, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return false, err
	}
	return client.SetNX(ctx, key, string(data), ttl).Result()
}

func setRecord(ctx context.Context, client RedisClient, key string, record *IdempotencyRecord, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, string(data), ttl).Err()
}
