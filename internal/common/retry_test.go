package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fastRetry = RetryOptions{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     5 * time.Millisecond,
	Multiplier:   2,
}

func TestWithRetry(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{name: "first try", failures: 0, wantCalls: 1},
		{name: "recovers", failures: 2, err: boom, wantCalls: 3},
		{name: "exhausted", failures: 5, err: boom, wantCalls: 3, wantErr: ErrMaxRetries},
		{name: "permanent", failures: 5, err: Permanent(boom), wantCalls: 1, wantErr: boom},
		{name: "rate limited", failures: 1, err: ErrRateLimit, wantCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			}, fastRetry)

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		return errors.New("flaky")
	}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Second})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ErrorNamesOperation(t *testing.T) {
	boom := errors.New("boom")
	opts := fastRetry
	opts.Operation = "upload"

	err := WithRetry(context.Background(), func() error { return boom }, opts)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "upload")
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))
	assert.True(t, IsPermanent(Permanent(errors.New("bad request"))))
	assert.False(t, IsPermanent(errors.New("timeout")))
}
