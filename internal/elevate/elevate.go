// Package elevate starts the PATH helper with elevated rights and reports
// when it exits.
package elevate

import (
	"context"
	"errors"
	"sync"
)

// ErrLaunch covers every way the helper can fail to start: missing
// executable, a refused consent prompt, or a failed process creation.
var ErrLaunch = errors.New("failed to launch updater")

// Launcher starts program elevated. It returns once the process is running,
// which on Windows is after the user has answered the consent prompt.
type Launcher interface {
	Launch(ctx context.Context, program string, args []string) (*Handle, error)
}

// Handle tracks a launched helper.
type Handle struct {
	done chan struct{}
	once sync.Once
	code int
}

func NewHandle() *Handle {
	return &Handle{done: make(chan struct{}), code: -1}
}

// Done is closed when the process has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// ExitCode is the helper's exit status, normalized to the signed value the
// helper passed to os.Exit. It is -1 until Done is closed.
func (h *Handle) ExitCode() int {
	select {
	case <-h.done:
		return h.code
	default:
		return -1
	}
}

// Exited records the exit status and closes Done. Later calls are ignored.
func (h *Handle) Exited(code int) {
	h.once.Do(func() {
		h.code = code
		close(h.done)
	})
}
