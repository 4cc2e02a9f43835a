package switcher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pink-tools/pink-jdk/internal/elevate"
	"github.com/pink-tools/pink-jdk/internal/envstore"
	"github.com/pink-tools/pink-jdk/internal/pathlist"
	"github.com/pink-tools/pink-jdk/internal/result"
	"github.com/pink-tools/pink-jdk/internal/updater"
)

// helperLauncher runs the real helper logic on a goroutine instead of an
// elevated process.
type helperLauncher struct {
	store   *envstore.Memory
	mailbox *result.Mailbox
	err     error
	// gate, when set, holds the helper until it is closed.
	gate chan struct{}
	// run replaces the helper entirely.
	run func(args []string) int
	// notify is handed to the helper as its change broadcast.
	notify func()

	mu    sync.Mutex
	calls [][]string
}

func (l *helperLauncher) Launch(ctx context.Context, program string, args []string) (*elevate.Handle, error) {
	l.mu.Lock()
	l.calls = append(l.calls, args)
	l.mu.Unlock()

	if l.err != nil {
		return nil, l.err
	}

	h := elevate.NewHandle()
	go func() {
		if l.gate != nil {
			<-l.gate
		}
		if l.run != nil {
			h.Exited(l.run(args))
			return
		}
		r := &updater.Runner{Store: l.store, Mailbox: l.mailbox, Notify: l.notify, Stdout: io.Discard, Stderr: io.Discard}
		h.Exited(r.Run(args))
	}()
	return h, nil
}

func (l *helperLauncher) Calls() [][]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

type fakeEnv struct {
	store     *envstore.Memory
	current   string
	refreshed string
	refreshes int
	err       error
}

func (e *fakeEnv) Refresh() error {
	if e.err != nil {
		return e.err
	}
	v, err := e.store.Read()
	if err != nil {
		return err
	}
	e.refreshed = v
	e.refreshes++
	return nil
}

func (e *fakeEnv) JavaBinDir() (string, bool) {
	return e.current, e.current != ""
}

type fixture struct {
	store    *envstore.Memory
	mailbox  *result.Mailbox
	launcher *helperLauncher
	env      *fakeEnv
	states   []State
	orch     *Orchestrator
}

func newFixture(t *testing.T, path string, ids ...string) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		store:   envstore.NewMemory(path),
		mailbox: result.NewMailbox(filepath.Join(dir, "env-path-updater.log")),
	}
	f.launcher = &helperLauncher{store: f.store, mailbox: f.mailbox}
	f.env = &fakeEnv{store: f.store}

	next := 0
	f.orch = New(Options{
		Launcher: f.launcher,
		Env:      f.env,
		Helper:   filepath.Join(dir, "env-path-updater"),
		Mailbox:  f.mailbox,
		LockPath: filepath.Join(dir, "switch.lock"),
		Interval: 5 * time.Millisecond,
		Timeout:  300 * time.Millisecond,
		OnState:  func(s State) { f.states = append(f.states, s) },
		NextID: func() string {
			id := ids[next%len(ids)]
			next++
			return id
		},
	})
	return f
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name    string
		current string
		want    []pathlist.Operation
	}{
		{"no java on PATH", "", []pathlist.Operation{pathlist.Add(`C:\jdk21\bin`)}},
		{"replace current", `C:\jdk17\bin`, []pathlist.Operation{
			pathlist.Remove(`C:\jdk17\bin`),
			pathlist.Add(`C:\jdk21\bin`),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Plan(tt.current, `C:\jdk21\bin`))
		})
	}
}

func TestSwitch_Succeeds(t *testing.T) {
	f := newFixture(t, `C:\Windows;C:\jdk17\bin;`, "42")
	f.env.current = `C:\jdk17\bin`

	err := f.orch.Switch(context.Background(), `C:\jdk21\bin`)
	require.NoError(t, err)

	assert.Equal(t, `C:\Windows;C:\jdk21\bin;`, f.store.Value())
	assert.Equal(t, `C:\Windows;C:\jdk21\bin;`, f.env.refreshed)
	assert.Equal(t, []State{Requested, Elevating, Polling, Succeeded}, f.states)
	assert.Equal(t, Succeeded, f.orch.State())

	calls := f.launcher.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"--remove", `C:\jdk17\bin`, "--add", `C:\jdk21\bin`, "--id", "42"}, calls[0])

	rec, err := f.mailbox.Read()
	require.NoError(t, err)
	assert.Equal(t, result.Record{ID: "42", Outcome: result.OK}, rec)
}

func TestSwitch_SlowBroadcastStillSucceeds(t *testing.T) {
	f := newFixture(t, `C:\Windows;`, "42")
	f.launcher.notify = func() { time.Sleep(500 * time.Millisecond) }

	err := f.orch.Switch(context.Background(), `C:\jdk21\bin`)
	require.NoError(t, err)
	assert.Equal(t, Succeeded, f.orch.State())
	assert.Equal(t, `C:\Windows;C:\jdk21\bin;`, f.env.refreshed)
}

func TestSwitch_StaleResultIgnored(t *testing.T) {
	f := newFixture(t, `C:\Windows;`, "43")
	require.NoError(t, f.mailbox.Publish(result.Record{ID: "42", Outcome: result.ERR, Message: "old failure"}))

	// The helper for 43 takes a while; the stale ERR for 42 must not end the wait.
	f.launcher.gate = make(chan struct{})
	go func() {
		time.Sleep(30 * time.Millisecond)
		close(f.launcher.gate)
	}()

	err := f.orch.Switch(context.Background(), `C:\jdk21\bin`)
	require.NoError(t, err)
	assert.Equal(t, `C:\Windows;C:\jdk21\bin;`, f.store.Value())
}

func TestSwitch_HelperFailureSurfaced(t *testing.T) {
	f := newFixture(t, `C:\Windows;`, "42")
	f.store.FailWrites(errors.New("Access denied"))

	err := f.orch.Switch(context.Background(), `C:\jdk21\bin`)
	require.Error(t, err)

	var opErr *result.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Contains(t, err.Error(), "Access denied")
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Equal(t, Failed, f.orch.State())
	assert.Equal(t, 0, f.env.refreshes)
}

func TestSwitch_TimesOutWithoutResult(t *testing.T) {
	f := newFixture(t, `C:\Windows;`, "42")
	f.launcher.run = func([]string) int { return updater.ExitBadArgs }

	start := time.Now()
	err := f.orch.Switch(context.Background(), `C:\jdk21\bin`)
	require.ErrorIs(t, err, ErrTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
	assert.Contains(t, err.Error(), "-10")
	assert.Equal(t, TimedOut, f.orch.State())
	assert.Equal(t, `C:\Windows;`, f.store.Value())
}

func TestSwitch_PersistentGarbageReported(t *testing.T) {
	f := newFixture(t, `C:\Windows;`, "42")
	f.launcher.run = func([]string) int {
		os.WriteFile(f.mailbox.Path(), []byte("ID: 42\nMAYBE\n"), 0644)
		return 0
	}

	err := f.orch.Switch(context.Background(), `C:\jdk21\bin`)
	require.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, result.ErrFormat)
}

func TestSwitch_LaunchFailure(t *testing.T) {
	f := newFixture(t, `C:\Windows;`, "42")
	f.launcher.err = errors.New("elevation was denied")

	err := f.orch.Switch(context.Background(), `C:\jdk21\bin`)
	require.ErrorIs(t, err, elevate.ErrLaunch)
	assert.Contains(t, err.Error(), "elevation was denied")
	assert.Equal(t, []State{Requested, Elevating, Failed}, f.states)

	_, err = f.mailbox.Read()
	assert.ErrorIs(t, err, result.ErrNotFound)
}

func TestSwitch_RefreshFailureReported(t *testing.T) {
	f := newFixture(t, `C:\Windows;`, "42")
	f.env.err = errors.New("reload failed")

	err := f.orch.Switch(context.Background(), `C:\jdk21\bin`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reload failed")
	assert.Equal(t, Succeeded, f.orch.State())
	assert.Equal(t, `C:\Windows;C:\jdk21\bin;`, f.store.Value())
}

func TestSwitch_SingleFlight(t *testing.T) {
	f := newFixture(t, `C:\Windows;`, "42", "43")
	f.launcher.gate = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- f.orch.Switch(context.Background(), `C:\jdk21\bin`)
	}()

	require.Eventually(t, func() bool {
		return len(f.launcher.Calls()) == 1
	}, time.Second, time.Millisecond)

	err := f.orch.Switch(context.Background(), `C:\jdk17\bin`)
	assert.ErrorIs(t, err, ErrBusy)

	close(f.launcher.gate)
	require.NoError(t, <-done)
	assert.Len(t, f.launcher.Calls(), 1)
}

func TestSwitch_CrossProcessLock(t *testing.T) {
	f := newFixture(t, `C:\Windows;`, "42")

	lock, err := acquireLock(f.orch.lockPath)
	require.NoError(t, err)

	err = f.orch.Switch(context.Background(), `C:\jdk21\bin`)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Empty(t, f.launcher.Calls())

	lock.release()
	require.NoError(t, f.orch.Switch(context.Background(), `C:\jdk21\bin`))
}

func TestSwitch_ContextCancelled(t *testing.T) {
	f := newFixture(t, `C:\Windows;`, "42")
	f.launcher.gate = make(chan struct{})
	f.launcher.run = func([]string) int { return 0 }
	defer close(f.launcher.gate)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := f.orch.Switch(ctx, `C:\jdk21\bin`)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Failed, f.orch.State())
}

func TestIDs_StrictlyIncreasing(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	s := &idSource{now: func() time.Time { return fixed }}

	a, b, c := s.next(), s.next(), s.next()
	assert.Equal(t, "1700000000000", a)
	assert.Equal(t, "1700000000001", b)
	assert.Equal(t, "1700000000002", c)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "timed out", TimedOut.String())
	assert.True(t, strings.HasPrefix(State(99).String(), "unknown"))
}
