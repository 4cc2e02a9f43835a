// Package switcher drives one PATH change from request to reloaded
// environment: it launches the elevated helper, waits for its result file
// and pulls the new value into the running process.
package switcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pink-tools/pink-jdk/internal/config"
	"github.com/pink-tools/pink-jdk/internal/elevate"
	"github.com/pink-tools/pink-jdk/internal/pathlist"
	"github.com/pink-tools/pink-jdk/internal/result"
	"github.com/pink-tools/pink-jdk/internal/updater"
	"github.com/pink-tools/pink-otel"
)

var (
	ErrTimeout = errors.New("timed out waiting for update result")
	ErrBusy    = errors.New("another PATH update is in progress")
)

// Environment is the process PATH view the orchestrator reloads after a
// successful update.
type Environment interface {
	Refresh() error
	JavaBinDir() (string, bool)
}

type Options struct {
	Launcher elevate.Launcher
	Env      Environment
	// Helper is the env-path-updater executable. The result file is
	// expected next to it unless Mailbox is set.
	Helper   string
	Mailbox  *result.Mailbox
	LockPath string
	Interval time.Duration
	Timeout  time.Duration
	// OnState observes every transition. It runs on the caller's goroutine.
	OnState func(State)
	// NextID replaces the process-wide timestamp ids.
	NextID func() string
}

type Orchestrator struct {
	launcher elevate.Launcher
	env      Environment
	helper   string
	mailbox  *result.Mailbox
	lockPath string
	interval time.Duration
	timeout  time.Duration
	onState  func(State)
	nextID   func() string

	mu      sync.Mutex
	stateMu sync.Mutex
	state   State
}

func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		launcher: opts.Launcher,
		env:      opts.Env,
		helper:   opts.Helper,
		mailbox:  opts.Mailbox,
		lockPath: opts.LockPath,
		interval: config.PollInterval(opts.Interval),
		timeout:  config.PollTimeout(opts.Timeout),
		onState:  opts.OnState,
		nextID:   opts.NextID,
	}
	if o.mailbox == nil {
		o.mailbox = result.NewMailbox(config.ResultFile(o.helper))
	}
	if o.nextID == nil {
		o.nextID = processIDs.next
	}
	return o
}

// Plan returns the operations that move PATH from the current java bin
// directory to target. An empty current means no java is on PATH.
func Plan(current, target string) []pathlist.Operation {
	if current == "" {
		return []pathlist.Operation{pathlist.Add(target)}
	}
	return []pathlist.Operation{pathlist.Remove(current), pathlist.Add(target)}
}

// State returns the most recent state.
func (o *Orchestrator) State() State {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	return o.state
}

// Switch replaces the active java bin directory on PATH with target.
func (o *Orchestrator) Switch(ctx context.Context, target string) error {
	current, _ := o.env.JavaBinDir()
	return o.Apply(ctx, Plan(current, target))
}

// Apply runs ops through the elevated helper and waits for the outcome.
// Only one request runs at a time; a concurrent caller gets ErrBusy.
func (o *Orchestrator) Apply(ctx context.Context, ops []pathlist.Operation) error {
	if len(ops) == 0 {
		return nil
	}
	if !o.mu.TryLock() {
		return ErrBusy
	}
	defer o.mu.Unlock()

	o.setState(Requested)

	if o.lockPath != "" {
		lock, err := acquireLock(o.lockPath)
		if err != nil {
			o.setState(Failed)
			return err
		}
		defer lock.release()
	}

	id := o.nextID()
	o.setState(Elevating)
	otel.Info(ctx, "launching updater", otel.Attr{K: "id", V: id}, otel.Attr{K: "operations", V: fmt.Sprint(ops)})

	h, err := o.launcher.Launch(ctx, o.helper, updater.Args(id, ops))
	if err != nil {
		if !errors.Is(err, elevate.ErrLaunch) {
			err = fmt.Errorf("%w: %w", elevate.ErrLaunch, err)
		}
		otel.Error(ctx, "updater launch failed", otel.Attr{K: "id", V: id}, otel.Attr{K: "error", V: err.Error()})
		o.setState(Failed)
		return err
	}

	o.setState(Polling)
	if err := o.poll(ctx, id, h); err != nil {
		if errors.Is(err, ErrTimeout) {
			o.setState(TimedOut)
		} else {
			o.setState(Failed)
		}
		otel.Error(ctx, "PATH update failed", otel.Attr{K: "id", V: id}, otel.Attr{K: "error", V: err.Error()})
		return err
	}

	otel.Info(ctx, "PATH updated", otel.Attr{K: "id", V: id})
	o.setState(Succeeded)

	if err := o.env.Refresh(); err != nil {
		otel.Warn(ctx, "failed to reload PATH", otel.Attr{K: "error", V: err.Error()})
		return fmt.Errorf("PATH updated but reload failed: %w", err)
	}
	return nil
}

// poll reads the result file until a record with id is final or the deadline
// passes. The helper exiting only triggers an early re-check; a helper that
// exits before its write lands still gets the rest of the window.
func (o *Orchestrator) poll(ctx context.Context, id string, h *elevate.Handle) error {
	deadline := time.NewTimer(o.timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	exited := h.Done()
	expired := false
	var lastFormat error

	for {
		rec, err := o.mailbox.Read()
		if err == nil {
			err = result.Match(rec, id)
		}

		var opErr *result.OperationError
		switch {
		case err == nil:
			return nil
		case errors.As(err, &opErr):
			return opErr
		case errors.Is(err, result.ErrFormat):
			lastFormat = err
		default:
			lastFormat = nil
		}

		if expired {
			return o.timeoutError(h, lastFormat)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			expired = true
		case <-exited:
			exited = nil
		case <-ticker.C:
		}
	}
}

func (o *Orchestrator) timeoutError(h *elevate.Handle, lastFormat error) error {
	err := fmt.Errorf("%w after %s", ErrTimeout, o.timeout)
	select {
	case <-h.Done():
		err = fmt.Errorf("%w (updater exited with %s)", err, describeExit(h.ExitCode()))
	default:
	}
	if lastFormat != nil {
		err = fmt.Errorf("%w: %w", err, lastFormat)
	}
	return err
}

func describeExit(code int) string {
	switch code {
	case updater.ExitOK:
		return "code 0"
	case updater.ExitBadArgs:
		return fmt.Sprintf("code %d, bad arguments", code)
	case updater.ExitOperationFailed:
		return fmt.Sprintf("code %d, operation failed", code)
	}
	return fmt.Sprintf("code %d", code)
}

func (o *Orchestrator) setState(s State) {
	o.stateMu.Lock()
	o.state = s
	o.stateMu.Unlock()
	if o.onState != nil {
		o.onState(s)
	}
}
