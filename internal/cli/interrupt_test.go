package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled")
	}
}

func TestWatch_SignalCancels(t *testing.T) {
	tests := []struct {
		name    string
		note    string
		want    []string
		notWant string
	}{
		{
			name: "with note",
			note: "The previous snapshot is unchanged.",
			want: []string{"Import interrupted!", "The previous snapshot is unchanged."},
		},
		{
			name:    "without note",
			want:    []string{"Import interrupted!"},
			notWant: "snapshot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &syncBuffer{}
			sigs := make(chan os.Signal, 1)
			ctx, in := watch(context.Background(), out, "Import", tt.note, sigs)
			defer in.Stop()

			sigs <- os.Interrupt
			waitDone(t, ctx)

			require.Eventually(t, in.Interrupted, time.Second, 5*time.Millisecond)
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
			if tt.notWant != "" {
				assert.NotContains(t, out.String(), tt.notWant)
			}
		})
	}
}

func TestWatch_ParentCancelIsNotAnInterrupt(t *testing.T) {
	out := &syncBuffer{}
	parent, cancel := context.WithCancel(context.Background())
	ctx, in := watch(parent, out, "Import", "", make(chan os.Signal))
	defer in.Stop()

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	cancel()
	waitDone(t, ctx)

	assert.False(t, in.Interrupted())
	assert.Empty(t, out.String())
}

func TestInterrupt_MessageShownOnce(t *testing.T) {
	out := &syncBuffer{}
	_, in := watch(context.Background(), out, "", "", make(chan os.Signal))
	defer in.Stop()

	in.trip()
	in.trip()

	assert.True(t, in.Interrupted())
	assert.Equal(t, 1, strings.Count(out.String(), "Operation interrupted!"))
}

func TestWatchInterrupts_Stop(t *testing.T) {
	ctx, in := WatchInterrupts(context.Background(), &syncBuffer{}, "Export", "")
	in.Stop()
	waitDone(t, ctx)
	assert.False(t, in.Interrupted())
}
