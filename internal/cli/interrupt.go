package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Interrupt tracks whether a long-running command was stopped by SIGINT or SIGTERM.
type Interrupt struct {
	w         io.Writer
	operation string
	note      string

	once   sync.Once
	mu     sync.Mutex
	hit    bool
	stop   func()
	cancel context.CancelFunc
}

// WatchInterrupts returns a context that is canceled when the process receives SIGINT
// or SIGTERM. On the first signal it prints "<operation> interrupted!" to w, followed
// by note when note is not empty. Call Stop when the operation finishes.
func WatchInterrupts(ctx context.Context, w io.Writer, operation, note string) (context.Context, *Interrupt) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	ctx, in := watch(ctx, w, operation, note, sigs)
	in.stop = func() { signal.Stop(sigs) }
	return ctx, in
}

func watch(ctx context.Context, w io.Writer, operation, note string, sigs <-chan os.Signal) (context.Context, *Interrupt) {
	if w == nil {
		w = os.Stderr
	}
	if operation == "" {
		operation = "Operation"
	}

	ctx, cancel := context.WithCancel(ctx)
	in := &Interrupt{w: w, operation: operation, note: note, cancel: cancel, stop: func() {}}

	go func() {
		select {
		case <-sigs:
			in.trip()
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, in
}

func (in *Interrupt) trip() {
	in.mu.Lock()
	in.hit = true
	in.mu.Unlock()

	in.once.Do(func() {
		msg := "\n\n" + FormatWarning(in.operation+" interrupted!")
		if in.note != "" {
			msg += "\n" + FormatInfo(in.note)
		}
		_, _ = fmt.Fprintln(in.w, msg)
	})
}

// Interrupted reports whether a signal arrived.
func (in *Interrupt) Interrupted() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.hit
}

// Stop releases the signal subscription and cancels the derived context.
func (in *Interrupt) Stop() {
	in.stop()
	in.cancel()
}
