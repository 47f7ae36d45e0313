package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrRateLimit marks an error from a remote API that asked the caller to slow down.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries is returned once every attempt has failed.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryOptions configures WithRetry. Zero fields take the defaults below.
type RetryOptions struct {
	// Operation names the call in log lines.
	Operation    string
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

func (o RetryOptions) withDefaults() RetryOptions {
	if o.Operation == "" {
		o.Operation = "operation"
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = 100 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 30 * time.Second
	}
	if o.Multiplier <= 0 {
		o.Multiplier = 2
	}
	return o
}

// backoff returns the wait after a failure. Rate limits wait the maximum.
func (o RetryOptions) backoff(current time.Duration, err error) time.Duration {
	if errors.Is(err, ErrRateLimit) {
		return o.MaxDelay
	}
	return min(current, o.MaxDelay)
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so WithRetry returns it without another attempt.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// WithRetry calls fn until it succeeds, returns a Permanent error, the context ends or
// MaxAttempts is reached. The delay grows by Multiplier after each failure.
func WithRetry(ctx context.Context, fn func() error, opts RetryOptions) error {
	opts = opts.withDefaults()
	delay := opts.InitialDelay

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		var p *permanentError
		if errors.As(err, &p) {
			return p.err
		}
		if attempt >= opts.MaxAttempts {
			break
		}

		wait := opts.backoff(delay, err)
		slog.Warn("Retrying after failure",
			"operation", opts.Operation,
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = time.Duration(float64(delay) * opts.Multiplier)
	}

	return fmt.Errorf("%s: %w after %d attempts: %w", opts.Operation, ErrMaxRetries, opts.MaxAttempts, err)
}
