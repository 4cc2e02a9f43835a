package api

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pink-tools/pink-jdk/internal/jdk"
)

type fakeHandler struct {
	mu       sync.Mutex
	switched []string
	loads    int
	current  string
	err      error
}

func (h *fakeHandler) Switch(ctx context.Context, path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.switched = append(h.switched, path)
	h.current = path
	return nil
}

func (h *fakeHandler) Reload(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loads++
	return h.err
}

func (h *fakeHandler) Current() (jdk.JDK, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return jdk.JDK{Path: h.current}, h.current != ""
}

func startServer(t *testing.T, h Handler) *Server {
	t.Helper()
	s, err := Listen("127.0.0.1:0", h)
	require.NoError(t, err)
	go s.Start()
	t.Cleanup(s.Close)
	return s
}

func TestSwitch(t *testing.T) {
	h := &fakeHandler{}
	s := startServer(t, h)

	msg, err := SendTo(s.Addr(), "switch", `C:\Program Files\Java\jdk-21\bin`)
	require.NoError(t, err)
	assert.Equal(t, `C:\Program Files\Java\jdk-21\bin`, msg)
	h.mu.Lock()
	assert.Equal(t, []string{`C:\Program Files\Java\jdk-21\bin`}, h.switched)
	h.mu.Unlock()

	msg, err = SendTo(s.Addr(), "current", "")
	require.NoError(t, err)
	assert.Equal(t, `C:\Program Files\Java\jdk-21\bin`, msg)
}

func TestErrorsComeBackAsErrors(t *testing.T) {
	h := &fakeHandler{err: errors.New("Access denied\nfor PATH")}
	s := startServer(t, h)

	_, err := SendTo(s.Addr(), "switch", "/jdk/bin")
	assert.EqualError(t, err, "Access denied for PATH")

	_, err = SendTo(s.Addr(), "reload", "")
	assert.Error(t, err)
	h.mu.Lock()
	assert.Equal(t, 1, h.loads)
	h.mu.Unlock()
}

func TestReload(t *testing.T) {
	h := &fakeHandler{}
	s := startServer(t, h)

	msg, err := SendTo(s.Addr(), "reload", "")
	require.NoError(t, err)
	assert.Equal(t, "reloaded", msg)
	h.mu.Lock()
	assert.Equal(t, 1, h.loads)
	h.mu.Unlock()
}

func TestCurrent_None(t *testing.T) {
	s := startServer(t, &fakeHandler{})
	_, err := SendTo(s.Addr(), "current", "")
	assert.EqualError(t, err, "no java on PATH")
}

func TestUnknownCommand(t *testing.T) {
	s := startServer(t, &fakeHandler{})
	_, err := SendTo(s.Addr(), "install", "x")
	assert.EqualError(t, err, "unknown command")
}

func TestNotRunning(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	_, err = SendTo(addr, "current", "")
	assert.ErrorIs(t, err, ErrNotRunning)
}
