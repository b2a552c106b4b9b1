// Package retry runs operations with exponential backoff. It backs the
// outbound basketball data calls and the startup connection loops.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrMaxRetriesExceeded is wrapped together with the last attempt's error
var ErrMaxRetriesExceeded = errors.New("max retries exceeded")

// Config contains retry configuration
type Config struct {
	// MaxRetries is the number of attempts after the first one
	MaxRetries int
	// InitialInterval is the wait before the first retry
	InitialInterval time.Duration
	// MaxInterval caps the backoff
	MaxInterval time.Duration
	// Multiplier grows the interval after each retry. 1 gives a fixed interval.
	Multiplier float64
	// JitterFactor in [0,1] randomizes each wait by ±factor
	JitterFactor float64
}

// DefaultConfig suits short outbound HTTP calls: 200ms, 400ms, capped at 2s
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:      2,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      2.0,
		JitterFactor:    0.1,
	}
}

// FixedConfig waits the same interval between attempts. Used when waiting
// for a dependency (database, redis) to come up.
func FixedConfig(maxRetries int, interval time.Duration) *Config {
	return &Config{
		MaxRetries:      maxRetries,
		InitialInterval: interval,
		MaxInterval:     interval,
		Multiplier:      1,
	}
}

// Operation is the function to be retried
type Operation func(ctx context.Context) error

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. Do returns the unwrapped error.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// NotifyFunc is called before each wait with the attempt that just failed
type NotifyFunc func(attempt int, err error, wait time.Duration)

// Result describes a finished Do call
type Result struct {
	Attempts int
	Err      error
}

// Retrier handles retry logic with exponential backoff
type Retrier struct {
	config Config
	notify NotifyFunc
}

// New creates a Retrier. Zero fields in config fall back to DefaultConfig.
func New(config *Config) *Retrier {
	def := DefaultConfig()
	if config == nil {
		config = def
	}

	c := *config
	if c.InitialInterval <= 0 {
		c.InitialInterval = def.InitialInterval
	}
	if c.MaxInterval < c.InitialInterval {
		c.MaxInterval = c.InitialInterval
	}
	if c.Multiplier < 1 {
		c.Multiplier = 1
	}
	c.JitterFactor = math.Max(0, math.Min(1, c.JitterFactor))
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}

	return &Retrier{config: c}
}

// OnRetry registers fn to be called before each backoff wait
func (r *Retrier) OnRetry(fn NotifyFunc) *Retrier {
	r.notify = fn
	return r
}

// Do runs op until it succeeds, returns a permanent error, the attempts run
// out, or ctx is done.
func (r *Retrier) Do(ctx context.Context, op Operation) Result {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{Attempts: attempt, Err: joinCtx(err, lastErr)}
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return Result{Attempts: attempt + 1}
		}

		var p *permanentError
		if errors.As(lastErr, &p) {
			return Result{Attempts: attempt + 1, Err: p.err}
		}

		if attempt == r.config.MaxRetries {
			break
		}

		wait := r.backoff(attempt)
		if r.notify != nil {
			r.notify(attempt+1, lastErr, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result{Attempts: attempt + 1, Err: joinCtx(ctx.Err(), lastErr)}
		case <-timer.C:
		}
	}

	return Result{
		Attempts: r.config.MaxRetries + 1,
		Err:      fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr),
	}
}

func joinCtx(ctxErr, lastErr error) error {
	if lastErr == nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", ctxErr, lastErr)
}

func (r *Retrier) backoff(attempt int) time.Duration {
	interval := float64(r.config.InitialInterval) * math.Pow(r.config.Multiplier, float64(attempt))

	if r.config.JitterFactor > 0 {
		jitter := interval * r.config.JitterFactor
		interval += (rand.Float64()*2 - 1) * jitter
	}

	if interval > float64(r.config.MaxInterval) {
		interval = float64(r.config.MaxInterval)
	}
	if interval <= 0 {
		interval = float64(r.config.InitialInterval)
	}

	return time.Duration(interval)
}

// Do is a convenience wrapper around New(config).Do
func Do(ctx context.Context, config *Config, op Operation) error {
	return New(config).Do(ctx, op).Err
}
