package elevate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_ExitedOnce(t *testing.T) {
	h := NewHandle()
	assert.Equal(t, -1, h.ExitCode())

	select {
	case <-h.Done():
		t.Fatal("done before exit")
	default:
	}

	h.Exited(-20)
	h.Exited(0)

	<-h.Done()
	assert.Equal(t, -20, h.ExitCode())
}

func TestLaunch_MissingProgram(t *testing.T) {
	_, err := New().Launch(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLaunch)
}

func TestLaunch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Launch(ctx, filepath.Join(t.TempDir(), "missing"), nil)
	assert.ErrorIs(t, err, ErrLaunch)
	assert.ErrorIs(t, err, context.Canceled)
}
